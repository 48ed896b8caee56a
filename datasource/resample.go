package datasource

import (
	"math"
	"sort"
)

// targetPoints is the number of buckets automatic resampling aims at
// over one query window.
const targetPoints = 600

// autoWidth picks a bucket width for a window when the caller asked
// for automatic resampling.
func autoWidth(length float64) float64 {
	return length / targetPoints
}

// resample folds a series into fixed-width buckets counted back from
// the window end. Each bucket keeps one sample, picked by the named
// reducer, and is timestamped at its center. An unknown reducer
// leaves the series unchanged.
func resample(s Series, to, width float64, reducer string) Series {
	reduce, ok := reducers[reducer]
	if !ok || width <= 0 {
		return s
	}

	samples := map[int64][]*float64{}
	for k, dt := range s.T {
		if k >= len(s.X) {
			break
		}
		bucket := int64(math.Floor((to - (s.Start + dt)) / width))
		samples[bucket] = append(samples[bucket], s.X[k])
	}

	buckets := make([]int64, 0, len(samples))
	for bucket := range samples {
		buckets = append(buckets, bucket)
	}

	// higher bucket numbers are further from the window end
	sort.Slice(buckets, func(i, j int) bool { return buckets[i] > buckets[j] })

	out := Series{
		Start:  s.Start,
		Length: s.Length,
		T:      make([]float64, 0, len(buckets)),
		X:      make([]*float64, 0, len(buckets)),
	}

	for _, bucket := range buckets {
		t := to - width*(float64(bucket)+0.5)
		out.T = append(out.T, t-s.Start)
		out.X = append(out.X, reduce(samples[bucket]))
	}

	return out
}

// reducers maps reducer names to fold functions. Samples arrive in
// ascending time order; aggregating reducers skip null samples and
// produce null when a bucket holds nothing else.
var reducers = map[string]func([]*float64) *float64{
	"first": func(samples []*float64) *float64 {
		return samples[0]
	},
	"last": func(samples []*float64) *float64 {
		return samples[len(samples)-1]
	},
	"mean": func(samples []*float64) *float64 {
		sum, n := 0.0, 0
		for _, x := range samples {
			if x != nil {
				sum += *x
				n++
			}
		}
		if n == 0 {
			return nil
		}
		mean := sum / float64(n)
		return &mean
	},
	"sum": func(samples []*float64) *float64 {
		sum, n := 0.0, 0
		for _, x := range samples {
			if x != nil {
				sum += *x
				n++
			}
		}
		if n == 0 {
			return nil
		}
		return &sum
	},
	"min": func(samples []*float64) *float64 {
		var min *float64
		for _, x := range samples {
			if x != nil && (min == nil || *x < *min) {
				v := *x
				min = &v
			}
		}
		return min
	},
	"max": func(samples []*float64) *float64 {
		var max *float64
		for _, x := range samples {
			if x != nil && (max == nil || *x > *max) {
				v := *x
				max = &v
			}
		}
		return max
	},
}
