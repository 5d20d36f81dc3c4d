package formula

import "strconv"

// stem generates identifiers stem1, stem2, ... skipping the taken ones.
// A nil namespace means every name is free.
type stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

func newStem(prefix string, namespace map[string]struct{}) *stem {
	return &stem{
		taken: namespace,
		stem:  prefix,
	}
}

func (s *stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
