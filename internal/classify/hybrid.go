package classify

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"selectd/pkg/types"
)

var classifierErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "selectd",
		Subsystem: "classify",
		Name:      "errors_total",
		Help:      "Classifier failures absorbed by the hybrid combiner",
	},
	[]string{"side"},
)

func init() {
	prometheus.MustRegister(classifierErrors)
}

// Relative trust in the two signals: semantic analysis is weighted 60/40
// over keywords, so keyword evidence is never entirely zeroed out.
const (
	semanticWeight = 0.6
	keywordWeight  = 0.4

	agreementBonus        = 0.1
	disagreementFloor     = 0.3
	bothFailedConfidence  = 0.6
	combinedConfidenceCap = 0.95
)

// HybridClassifier fans out to the keyword and semantic classifiers
// concurrently and merges their results.
type HybridClassifier struct {
	keyword  *KeywordClassifier
	semantic *SemanticClassifier
	log      zerolog.Logger
}

// NewHybridClassifier builds the combiner over both classifiers.
func NewHybridClassifier(k *KeywordClassifier, s *SemanticClassifier, log zerolog.Logger) *HybridClassifier {
	return &HybridClassifier{keyword: k, semantic: s, log: log}
}

type classifierOutcome struct {
	result types.PromptCategory
	err    error
}

// Classify runs both classifiers concurrently, joins on both settling,
// and merges per the agreement/weighting policy. It never returns an
// error: total classification failure degrades to general/0.6.
func (c *HybridClassifier) Classify(ctx context.Context, prompt string) types.PromptCategory {
	keywordCh := make(chan classifierOutcome, 1)
	semanticCh := make(chan classifierOutcome, 1)

	go func() {
		keywordCh <- c.runKeyword(prompt)
	}()
	go func() {
		result, err := c.semantic.Classify(ctx, prompt)
		semanticCh <- classifierOutcome{result: result, err: err}
	}()

	keyword := <-keywordCh
	semantic := <-semanticCh

	switch {
	case keyword.err != nil && semantic.err != nil:
		classifierErrors.WithLabelValues("keyword").Inc()
		classifierErrors.WithLabelValues("semantic").Inc()
		c.log.Warn().AnErr("keyword", keyword.err).AnErr("semantic", semantic.err).
			Msg("both classifiers failed")
		return types.PromptCategory{Type: types.CategoryGeneral, Confidence: bothFailedConfidence}
	case semantic.err != nil:
		classifierErrors.WithLabelValues("semantic").Inc()
		c.log.Debug().Err(semantic.err).Msg("semantic classifier failed, using keyword result")
		return keyword.result
	case keyword.err != nil:
		classifierErrors.WithLabelValues("keyword").Inc()
		c.log.Debug().Err(keyword.err).Msg("keyword classifier failed, using semantic result")
		return semantic.result
	}
	return combine(semantic.result, keyword.result)
}

// runKeyword wraps the pure keyword classifier so a panic in keyword data
// surfaces as a failure instead of tearing down the combiner.
func (c *HybridClassifier) runKeyword(prompt string) (out classifierOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = classifierOutcome{err: fmt.Errorf("keyword classifier panic: %v", r)}
		}
	}()
	return classifierOutcome{result: c.keyword.Classify(prompt)}
}

func combine(semantic, keyword types.PromptCategory) types.PromptCategory {
	if semantic.Type == keyword.Type {
		confidence := semanticWeight*semantic.Confidence + keywordWeight*keyword.Confidence + agreementBonus
		if confidence > combinedConfidenceCap {
			confidence = combinedConfidenceCap
		}
		return types.PromptCategory{Type: semantic.Type, Confidence: confidence}
	}
	semanticScore := semanticWeight * semantic.Confidence
	keywordScore := keywordWeight * keyword.Confidence
	winner := semantic
	score := semanticScore
	if keywordScore > semanticScore {
		winner = keyword
		score = keywordScore
	}
	if score < disagreementFloor {
		score = disagreementFloor
	}
	return types.PromptCategory{Type: winner.Type, Confidence: score}
}
