package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gocompare/internal/llmstub"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	model := os.Getenv("MODEL_ID")
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}
	h := llmstub.New(model)
	if strings.EqualFold(os.Getenv("BLANK"), "true") {
		h.Blank = true
	}

	log.Info().Str("addr", addr).Str("model", h.Model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
