package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

func unknownTableIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown table ID '%s'", unknownID)
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("cannot encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}
