// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package returns

// Return2 holds the results of a call declared to return two values.
type Return2 struct{ base }

func (r Return2) First() any { return r.vals[0] }
func (r Return2) Second() any { return r.vals[1] }

// Return3 holds the results of a call declared to return three values.
type Return3 struct{ base }

func (r Return3) First() any { return r.vals[0] }
func (r Return3) Second() any { return r.vals[1] }
func (r Return3) Third() any { return r.vals[2] }

// Return4 holds the results of a call declared to return four values.
type Return4 struct{ base }

func (r Return4) First() any { return r.vals[0] }
func (r Return4) Second() any { return r.vals[1] }
func (r Return4) Third() any { return r.vals[2] }
func (r Return4) Fourth() any { return r.vals[3] }

// Return5 holds the results of a call declared to return five values.
type Return5 struct{ base }

func (r Return5) First() any { return r.vals[0] }
func (r Return5) Second() any { return r.vals[1] }
func (r Return5) Third() any { return r.vals[2] }
func (r Return5) Fourth() any { return r.vals[3] }
func (r Return5) Fifth() any { return r.vals[4] }

// Return6 holds the results of a call declared to return six values.
type Return6 struct{ base }

func (r Return6) First() any { return r.vals[0] }
func (r Return6) Second() any { return r.vals[1] }
func (r Return6) Third() any { return r.vals[2] }
func (r Return6) Fourth() any { return r.vals[3] }
func (r Return6) Fifth() any { return r.vals[4] }
func (r Return6) Sixth() any { return r.vals[5] }

// Return7 holds the results of a call declared to return seven values.
type Return7 struct{ base }

func (r Return7) First() any { return r.vals[0] }
func (r Return7) Second() any { return r.vals[1] }
func (r Return7) Third() any { return r.vals[2] }
func (r Return7) Fourth() any { return r.vals[3] }
func (r Return7) Fifth() any { return r.vals[4] }
func (r Return7) Sixth() any { return r.vals[5] }
func (r Return7) Seventh() any { return r.vals[6] }

// Return8 holds the results of a call declared to return eight values.
type Return8 struct{ base }

func (r Return8) First() any { return r.vals[0] }
func (r Return8) Second() any { return r.vals[1] }
func (r Return8) Third() any { return r.vals[2] }
func (r Return8) Fourth() any { return r.vals[3] }
func (r Return8) Fifth() any { return r.vals[4] }
func (r Return8) Sixth() any { return r.vals[5] }
func (r Return8) Seventh() any { return r.vals[6] }
func (r Return8) Eighth() any { return r.vals[7] }

// Return9 holds the results of a call declared to return nine values.
type Return9 struct{ base }

func (r Return9) First() any { return r.vals[0] }
func (r Return9) Second() any { return r.vals[1] }
func (r Return9) Third() any { return r.vals[2] }
func (r Return9) Fourth() any { return r.vals[3] }
func (r Return9) Fifth() any { return r.vals[4] }
func (r Return9) Sixth() any { return r.vals[5] }
func (r Return9) Seventh() any { return r.vals[6] }
func (r Return9) Eighth() any { return r.vals[7] }
func (r Return9) Ninth() any { return r.vals[8] }
