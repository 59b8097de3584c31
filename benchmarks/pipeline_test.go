package benchmarks

import (
	"testing"

	"github.com/ahmetb/go-linq/v3"
	"github.com/destel/rill"
	"github.com/lguimbarda/min-rx/rx"
	"github.com/lguimbarda/min-rx/rx/filter"
	"github.com/lguimbarda/min-rx/rx/transform"
	"github.com/samber/lo"
)

// =============================================================================
// Pipeline Benchmarks: Map -> Filter -> SkipLast -> Take
// =============================================================================

func BenchmarkPipeline_MinRx(b *testing.B) {
	data := generateInts(MediumSize)
	squared := transform.Map(squareWithErr).Apply(rx.FromSlice(data))
	pipeline := rx.Pipe(squared,
		filter.Filter(isEven),
		filter.SkipLast[int](skipN),
		filter.Take[int](100),
	)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = rx.Slice(ctx, pipeline)
	}
}

func BenchmarkPipeline_Rill(b *testing.B) {
	data := generateInts(MediumSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		stream := rill.FromSlice(data, nil)
		mapped := rill.Map(stream, 1, func(x int) (int, error) {
			return square(x), nil
		})
		filtered := rill.Filter(mapped, 1, func(x int) (bool, error) {
			return isEven(x), nil
		})
		all, _ := rill.ToSlice(filtered)
		all = all[:max(len(all)-skipN, 0)]
		_ = all[:min(len(all), 100)]
	}
}

func BenchmarkPipeline_Lo(b *testing.B) {
	data := generateInts(MediumSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		mapped := lo.Map(data, func(x int, _ int) int {
			return square(x)
		})
		filtered := lo.Filter(mapped, func(x int, _ int) bool {
			return isEven(x)
		})
		_ = lo.Slice(lo.DropRight(filtered, skipN), 0, 100)
	}
}

func BenchmarkPipeline_GoLinq(b *testing.B) {
	data := generateInts(MediumSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		var result []int
		q := linq.From(data).SelectT(square).WhereT(isEven)
		q.Take(q.Count() - skipN).Take(100).ToSlice(&result)
	}
}
