// SPDX-License-Identifier: MIT
package calculators_test

import (
	"fmt"

	"github.com/katalvlaran/pairsum/calculators"
	"github.com/katalvlaran/pairsum/pairq"
	"github.com/katalvlaran/pairsum/structure"
)

func ExamplePairCounter() {
	stru := structure.NewAtomic(
		structure.NewSite("C", 0, 0, 0),
		structure.NewSite("C", 1, 0, 0),
		structure.NewSite("C", 2, 0, 0),
		structure.NewSite("C", 3, 0, 0),
	)
	c := calculators.NewPairCounter(pairq.WithRmax(1.5))
	n, err := c.Count(stru)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(n)
	// Output: 3
}

func ExampleBondCalculator() {
	stru := structure.NewAtomic(
		structure.NewSite("O", 0, 0, 0),
		structure.NewSite("H", 0.96, 0, 0),
	)
	c := calculators.NewBondCalculator()
	if _, err := c.Eval(stru); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Distances(), c.Types0(), c.Types1())
	// Output: [0.96 0.96] [O H] [H O]
}
