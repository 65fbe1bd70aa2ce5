package db

import (
	"database/sql"
	"log"
	"sync"

	"github.com/go-sql-driver/mysql"

	"github.com/akabraham06/warp/config"
)

var dataDb *sql.DB
var dataDBOnce = &sync.Once{}

func GetDataDBConnection(cfg *config.Config) *sql.DB {
	dataDBOnce.Do(func() {
		dbCfg := mysql.Config{
			User:      cfg.DataDB.User,
			Passwd:    cfg.DataDB.Pass,
			Net:       "tcp",
			Addr:      cfg.DataDB.Addr,
			DBName:    cfg.DataDB.Name,
			ParseTime: true,
		}
		// Get a database handle.
		var err error
		dataDb, err = sql.Open("mysql", dbCfg.FormatDSN())
		if err != nil {
			log.Fatal(err)
		}

		pingErr := dataDb.Ping()
		if pingErr != nil {
			log.Fatal(pingErr)
		}
	})

	return dataDb
}
