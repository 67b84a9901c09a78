package bench

import (
	"fmt"
	"strconv"
	"time"

	"github.com/batchcorp/benchbot/types"
)

// IsPrime uses 6k±1 trial division.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}

	if n <= 3 {
		return true
	}

	if n%2 == 0 || n%3 == 0 {
		return false
	}

	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}

	return true
}

// CPU counts the primes below PrimeBound.
func (b *Bench) CPU() *types.Result {
	start := time.Now()

	var count int

	for n := 2; n < PrimeBound; n++ {
		if IsPrime(n) {
			count++
		}
	}

	elapsed := time.Since(start)

	return &types.Result{
		Variant:     types.CPUVariant,
		Title:       "CPU benchmark",
		Description: fmt.Sprintf("Counting prime numbers below %d", PrimeBound),
		StatLabel:   "Primes found",
		Statistic:   count,
		Elapsed:     elapsed,
	}
}

// Memory fills a large map and sums the value lengths of a fixed subset of
// keys.
func (b *Bench) Memory() *types.Result {
	start := time.Now()

	data := make(map[int]string)

	for i := 0; i < MapInserts; i++ {
		data[i] = strconv.Itoa(i)
	}

	var checksum int

	for i := 0; i < MapProbes; i++ {
		if v, ok := data[i]; ok {
			checksum += len(v)
		}
	}

	elapsed := time.Since(start)

	return &types.Result{
		Variant:     types.MemoryVariant,
		Title:       "Memory benchmark",
		Description: fmt.Sprintf("Building and probing a map of %d entries", MapInserts),
		StatLabel:   "Checksum",
		Statistic:   checksum,
		Elapsed:     elapsed,
	}
}

// IO is an allocation workload; it performs no disk or network I/O. The name
// is kept for compatibility with the command surface.
func (b *Bench) IO() *types.Result {
	start := time.Now()

	data := make([][]int, 0, NumSequences)

	for s := 0; s < NumSequences; s++ {
		seq := make([]int, 0, SequenceLength)

		for i := 0; i < SequenceLength; i++ {
			seq = append(seq, i%SequenceModulo)
		}

		data = append(data, seq)
	}

	var total int

	for _, seq := range data {
		for _, v := range seq {
			total += v
		}
	}

	elapsed := time.Since(start)

	return &types.Result{
		Variant:     types.IOVariant,
		Title:       "Simulated I/O benchmark",
		Description: fmt.Sprintf("Creating and processing %d sequences of %d elements", NumSequences, SequenceLength),
		StatLabel:   "Total sum",
		Statistic:   total,
		Elapsed:     elapsed,
	}
}
