package analysis

import (
	"golang.org/x/time/rate"

	"meeting-task-automation/pkg/datemath"
	"meeting-task-automation/pkg/llmprovider"
	"meeting-task-automation/pkg/log"
)

// Orchestrator runs transcript analysis end to end: chunk planning, LLM
// extraction with provider fallback, chunk merging, and due-date resolution.
type Orchestrator struct {
	l        log.Logger
	llm      *llmprovider.Manager
	resolver *datemath.Resolver
	limiter  *rate.Limiter
	opts     Options
}

func New(l log.Logger, llm *llmprovider.Manager, opts Options) *Orchestrator {
	opts = opts.withDefaults()

	limit := rate.Inf
	if opts.ChunkInterval > 0 {
		limit = rate.Every(opts.ChunkInterval)
	}

	return &Orchestrator{
		l:        l,
		llm:      llm,
		resolver: datemath.NewResolver(),
		limiter:  rate.NewLimiter(limit, 1),
		opts:     opts,
	}
}
