package service

import "time"

// stamp devolve o horário de gravação em UTC (milissegundos, que é o que o Mongo guarda).
// Se o relógio não andou desde prev, avança 1ms para que updatedAt seja sempre crescente.
func stamp(now func() time.Time, prev time.Time) time.Time {
	t := now().UTC().Truncate(time.Millisecond)
	if !prev.IsZero() && !t.After(prev) {
		t = prev.UTC().Add(time.Millisecond)
	}
	return t
}
