package server

// randomValues draws a sample of distinct values from
// [RandomMin, RandomMax]. Its length is drawn from
// [RandomCountMin, RandomCountMax], capped by the size of the value range.
// Callers hold srv.mu.
func (srv *Server) randomValues() []int {
	span := srv.cfg.RandomMax - srv.cfg.RandomMin + 1
	n := srv.cfg.RandomCountMin + srv.rng.IntN(srv.cfg.RandomCountMax-srv.cfg.RandomCountMin+1)
	n = min(n, span)

	perm := srv.rng.Perm(span)[:n]
	for i := range perm {
		perm[i] += srv.cfg.RandomMin
	}
	return perm
}
