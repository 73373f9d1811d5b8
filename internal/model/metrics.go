package model

// WeightedF1 is the support-weighted mean of the per-class F1 scores over the
// classes present in either yTrue or yPred.
func WeightedF1(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}

	type counts struct{ tp, fp, fn, support int }
	classes := map[int]*counts{}
	get := func(label int) *counts {
		c, ok := classes[label]
		if !ok {
			c = &counts{}
			classes[label] = c
		}
		return c
	}

	for i := range yTrue {
		truth, pred := yTrue[i], yPred[i]
		get(truth).support++
		if truth == pred {
			get(truth).tp++
			continue
		}
		get(pred).fp++
		get(truth).fn++
	}

	var weighted float64
	for _, c := range classes {
		denom := 2*c.tp + c.fp + c.fn
		if denom == 0 || c.support == 0 {
			continue
		}
		f1 := float64(2*c.tp) / float64(denom)
		weighted += f1 * float64(c.support)
	}

	return weighted / float64(len(yTrue))
}
