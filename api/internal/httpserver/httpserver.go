package httpserver

import (
	"log"
	"net/http"
)

func StartHTTP(addr string, mux *http.ServeMux) error {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("voxguard voice analysis api"))
	})
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
