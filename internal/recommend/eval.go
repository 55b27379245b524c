package recommend

import "context"

// maxEvalResumes bounds the offline evaluation sample.
const maxEvalResumes = 20

// EvalReport summarizes an offline evaluation run. Without relevance labels
// the mean top-k score stands in for all three ranking metrics.
type EvalReport struct {
	Mode      Mode    `json:"mode"`
	K         int     `json:"k"`
	Resumes   int     `json:"resumes"`
	Precision float64 `json:"precision_at_k"`
	Recall    float64 `json:"recall_at_k"`
	NDCG      float64 `json:"ndcg_at_k"`
}

// OfflineEval scores the first résumés of the catalog against every job and
// reports the mean top-k score across them.
func (e *Engine) OfflineEval(ctx context.Context, mode Mode, k int) (EvalReport, error) {
	if k <= 0 {
		k = defaultTopK
	}
	report := EvalReport{Mode: mode, K: k}

	snap := e.snapshot()
	if snap == nil {
		return report, nil
	}

	var total float64
	for _, r := range snap.catalog.Resumes {
		if report.Resumes == maxEvalResumes {
			break
		}
		recs, err := e.RecommendForResume(ctx, r.ResumeID, e.defaultPersona, k, mode)
		if err != nil {
			return report, err
		}
		if len(recs) == 0 {
			continue
		}
		var sum float64
		for _, rec := range recs {
			sum += rec.Score
		}
		total += sum / float64(len(recs))
		report.Resumes++
	}

	if report.Resumes > 0 {
		mean := total / float64(report.Resumes)
		report.Precision = mean
		report.Recall = mean
		report.NDCG = mean
	}
	return report, nil
}
