package param_test

import (
	"fmt"

	"github.com/cwbudde/algo-fit/param"
)

func ExampleSet() {
	s := param.NewSet()
	s.Add(param.Bounded("a", 2.5, 0, 10))
	s.Add(param.Fixed("b", 1))
	s.Add(param.Bounded("loc0", 4, 0, 8))

	fmt.Println("names:", s.Names())
	fmt.Println("free: ", s.FreeNames())
	fmt.Println("x:    ", s.FreeValues())

	// A fitter hands back an adjusted free vector.
	s.SetFreeValues([]float64{3.25, 4.5})
	a, _ := s.Value("a")
	b, _ := s.Value("b")
	fmt.Printf("a=%.2f b=%.2f\n", a, b)

	// Output:
	// names: [a b loc0]
	// free:  [a loc0]
	// x:     [2.5 4]
	// a=3.25 b=1.00
}
