package handlers

import (
	"log"
	"net/http"
)

// respondWithError writes userMsg to the client and logs the underlying
// error with logMsg for context. A nil err logs nothing.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}
