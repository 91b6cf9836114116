package main

import (
	"log"
	"net/http"
	"os"

	"miniblog/internal/db"
	"miniblog/internal/memory"
	"miniblog/internal/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var srv *server.Server
	var err error
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		database, dbErr := db.Open(dbPath)
		if dbErr != nil {
			log.Fatal(dbErr)
		}
		srv, err = server.New(database, "web/templates")
	} else {
		log.Println("DB_PATH not set, keeping posts in memory")
		srv, err = server.NewMemory(memory.NewStore(), "web/templates")
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		log.Fatal(err)
	}
}
