package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
	"github.com/uprootiny/coggy-sub000/core/attention"
)

// Report is the single observable outcome of one pipeline turn, per
// spec.md §4.3 and §7. An ID is stamped on every report so a caller can
// correlate it against logs, following the teacher's uuid.New().String()
// turn-identifier pattern (orchestration/engine.go).
type Report struct {
	ID                string
	Semantic          *Semantic
	Normalized        *NormalizedSemantic
	ConceptGrounding  Grounding
	RelationGrounding RelationGrounding
	Commit            *CommitResult
	Diagnosis         Diagnosis
	Rescue            *RescueResult
	Metrics           MetricsSummary
}

// Pipeline wires a fixed Metrics accumulator and logger across repeated
// turns against caller-supplied atomspace/bank pairs. Atomspace and Bank
// are passed per-call rather than owned here, since spec.md scopes them as
// independent, separately constructible stores (§2).
type Pipeline struct {
	metrics *Metrics
	log     *slog.Logger
}

// New constructs a Pipeline with a fresh Metrics accumulator.
func New(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{metrics: NewMetrics(), log: log}
}

// Metrics exposes the pipeline's rolling accumulator for inspection.
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Process runs one full turn: extract, normalize, ground, commit (when the
// normalized semantic carries at least one concept), diagnose, and rescue
// when triggered. It never returns a non-nil error for a malformed or
// empty input text — the diagnosis is the sole observable failure mode
// (spec.md §7's totality guarantee) — only a nil space or bank is
// rejected, since those are caller programming errors rather than turn
// outcomes.
func (p *Pipeline) Process(space *atomspace.Atomspace, bank *attention.Bank, text string) (*Report, error) {
	if space == nil {
		return nil, fmt.Errorf("pipeline: nil atomspace")
	}
	if bank == nil {
		return nil, fmt.Errorf("pipeline: nil attention bank")
	}

	sem := Extract(text)
	norm := Normalize(sem)

	cg := GroundConcepts(space, norm.Concepts)
	rg := GroundRelations(space, norm.Relations)

	var commitResult *CommitResult
	if len(norm.Concepts) > 0 {
		cr := Commit(space, bank, norm, cg, p.log)
		commitResult = &cr
	}

	diag := Diagnose(norm, cg, rg, bank.Funds())

	// Record the turn before the rescue check, so the rolling window the
	// trigger reads already holds this turn's grounding rate.
	p.metrics.RecordTurn(norm, cg, rg, diag, false)

	var rescueRes *RescueResult
	rescued := false
	if p.metrics.RescueShouldTrigger(diag) {
		rescueRes, rescued = Rescue(diag, space, bank, norm, p.log)
	}
	if rescued {
		p.metrics.mu.Lock()
		p.metrics.vacuumTriggers++
		p.metrics.mu.Unlock()
	}

	report := &Report{
		ID:                uuid.New().String(),
		Semantic:          sem,
		Normalized:        norm,
		ConceptGrounding:  cg,
		RelationGrounding: rg,
		Commit:            commitResult,
		Diagnosis:         diag,
		Rescue:            rescueRes,
		Metrics:           p.metrics.Summary(),
	}
	p.log.Debug("pipeline turn complete",
		"report_id", report.ID,
		"diagnosis", diag.Kind.String(),
		"rescued", rescued,
	)
	return report, nil
}
