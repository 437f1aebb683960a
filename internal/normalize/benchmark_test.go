package normalize

import (
	"strconv"
	"testing"
)

func BenchmarkNormalize(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Normalize("José María de la Cruz-O'Brien " + strconv.Itoa(i))
	}
}
