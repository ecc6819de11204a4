package web

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keyvector/key-vector/internal/config"
	"github.com/keyvector/key-vector/internal/database"
	"github.com/keyvector/key-vector/internal/morse"
	"github.com/keyvector/key-vector/internal/phrase"
)

const statsTimeout = 2 * time.Second

// maxStatsDays caps the ?days= window of /api/v1/stats
const maxStatsDays = 90

// WordResponse is the body of /get_word/:mode. The field name stays "word"
// for every mode because existing clients read it.
type WordResponse struct {
	Word string `json:"word"`
}

// ToneMS is a key-down interval in milliseconds
type ToneMS struct {
	StartMS  int64 `json:"start_ms"`
	LengthMS int64 `json:"length_ms"`
}

// MorseResponse is the body of /get_morse/:mode
type MorseResponse struct {
	Word       string   `json:"word"`
	Morse      string   `json:"morse"`
	UnitMS     int64    `json:"unit_ms"`
	ToneHz     int      `json:"tone_hz"`
	DurationMS int64    `json:"duration_ms"`
	Tones      []ToneMS `json:"tones"`
}

// bucketFor maps a requested mode onto its stats bucket
func bucketFor(mode string) string {
	if m, ok := phrase.ParseMode(mode); ok {
		return string(m)
	}
	return database.BucketError
}

// record counts a served item. Failures are logged and never reach the client.
func (s *WebServer) record(c *gin.Context, mode string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statsTimeout)
	defer cancel()
	if err := s.Stats.Record(ctx, bucketFor(mode)); err != nil {
		log.Printf("[WEB]: Warning: failed to record stats for mode '%s': %v", mode, err)
	}
}

// getWord handles /get_word/:mode. Unknown modes answer 200 with "ERROR".
func (s *WebServer) getWord(c *gin.Context) {
	mode := c.Param("mode")
	word := s.Selector.Select(mode)
	s.record(c, mode)
	c.JSON(http.StatusOK, WordResponse{Word: word})
}

// getMorse handles /get_morse/:mode, adding the encoded form and playback schedule
func (s *WebServer) getMorse(c *gin.Context) {
	mode := c.Param("mode")
	word := s.Selector.Select(mode)
	s.record(c, mode)
	c.JSON(http.StatusOK, buildMorseResponse(word, s.Morse))
}

func buildMorseResponse(word string, mc config.MorseConfig) MorseResponse {
	tones, total := morse.Schedule(word, mc.Unit)
	out := MorseResponse{
		Word:       word,
		Morse:      morse.Encode(word),
		UnitMS:     mc.Unit.Milliseconds(),
		ToneHz:     mc.ToneHz,
		DurationMS: total.Milliseconds(),
		Tones:      make([]ToneMS, 0, len(tones)),
	}
	for _, t := range tones {
		out.Tones = append(out.Tones, ToneMS{StartMS: t.Start.Milliseconds(), LengthMS: t.Length.Milliseconds()})
	}
	return out
}

// getStats returns served-item counters per mode
func (s *WebServer) getStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statsTimeout)
	defer cancel()

	counts, err := s.Stats.Counts(ctx)
	if err != nil {
		log.Printf("[WEB]: Error: failed to load stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statistics"})
		return
	}

	resp := gin.H{
		"counts":         counts,
		"total":          database.Total(counts),
		"uptime_seconds": int64(s.Uptime().Seconds()),
		"version":        config.AppVersion,
	}

	if dr, ok := s.Stats.(database.DailyReporter); ok {
		days := 7
		if d := c.Query("days"); d != "" {
			if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 {
				days = min(parsed, maxStatsDays)
			}
		}
		daily, err := dr.DailyCounts(ctx, days)
		if err != nil {
			log.Printf("[WEB]: Error: failed to load daily stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statistics"})
			return
		}
		resp["daily"] = daily
	}

	c.JSON(http.StatusOK, resp)
}

// listWords returns the single-word vocabulary
func (s *WebServer) listWords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"words": phrase.Words()})
}
