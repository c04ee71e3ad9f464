package handlers

import (
	"net/http"

	"speakpractice/internal/security"
)

// Routes bundles the handlers mounted on the API mux
type Routes struct {
	Startup      *StartupStatus
	Dialogues    *DialogueHandler
	Scores       *ScoreHandler
	Practice     *PracticeHandler
	Conversation *ConversationHandler

	// Limiter guards the routes that call paid upstream services. Nil
	// disables rate limiting.
	Limiter *security.RateLimiter

	// StaticPath is served under /static/ when non-empty
	StaticPath string

	// Metrics is served on GET /metrics when non-nil
	Metrics http.Handler
}

// NewMux registers every route on a new ServeMux
func NewMux(rt Routes) *http.ServeMux {
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		if rt.Limiter == nil {
			return h
		}
		return RateLimit(rt.Limiter, h)
	}

	mux := http.NewServeMux()

	// Static files (synthesized audio)
	if rt.StaticPath != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(rt.StaticPath))))
	}
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}
	mux.HandleFunc("GET /healthz", rt.Startup.Health)

	// Catalog
	mux.HandleFunc("GET /api/categories", rt.Dialogues.ListCategories)
	mux.HandleFunc("GET /api/categories/{categoryId}/dialogues", rt.Dialogues.ListByCategory)
	mux.HandleFunc("GET /api/dialogues/{id}", rt.Dialogues.GetDialogue)

	// Scoring
	mux.HandleFunc("POST /api/score/line", limited(rt.Scores.ScoreLine))
	mux.HandleFunc("POST /api/score/turn", limited(rt.Scores.ScoreTurn))

	// Practice routes
	mux.HandleFunc("POST /api/practice", rt.Practice.StartPractice)
	mux.HandleFunc("GET /api/practice/{id}", rt.Practice.GetPractice)
	mux.HandleFunc("POST /api/practice/{id}/transcript", rt.Practice.SubmitTranscript)
	mux.HandleFunc("POST /api/practice/{id}/audio", limited(rt.Practice.SubmitAudio))
	mux.HandleFunc("POST /api/practice/{id}/next", rt.Practice.NextLine)
	mux.HandleFunc("POST /api/practice/{id}/retry", rt.Practice.Retry)
	mux.HandleFunc("POST /api/practice/{id}/replay", limited(rt.Practice.Replay))

	// AI conversation
	mux.HandleFunc("POST /api/conversation", limited(rt.Conversation.Respond))

	return mux
}
