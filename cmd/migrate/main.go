package main

import (
	"DiningAPI/internal/databases"
	"DiningAPI/internal/hours"
	"DiningAPI/internal/logger"
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	path := flag.String("path", "hours", "migration set, also the database file name")
	seed := flag.String("seed", "", "schedule JSON to load into the database, \"embedded\" for the bundled one")
	flag.Parse()

	logger.Init("info", "development")
	log := logger.Log

	dbPath := "./internal/databases/" + *path + ".db"
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := databases.Migrate(db, *path); err != nil {
		log.Fatal(err)
	}
	log.Infof("Database migration complete for the: %s path", *path)

	if *seed == "" {
		return
	}

	var doc hours.Document
	if *seed == "embedded" {
		doc, err = hours.BundledDocument()
	} else {
		var data []byte
		if data, err = os.ReadFile(*seed); err == nil {
			doc, err = hours.DecodeDocument(data)
		}
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to read the seed schedule")
	}

	if err := hours.NewSQLiteSource(db, dbPath).Seed(context.Background(), doc); err != nil {
		log.WithError(err).Fatal("Failed to seed the schedule")
	}
	log.WithField("halls", len(doc.DiningHalls)).Info("Schedule seeded")
}

/*
Dining hours service. Open, closed and limited status for campus dining halls.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
