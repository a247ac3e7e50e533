package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestMaxQuantity() {
	tests := []struct {
		name        string
		budget      float64
		price       float64
		precision   int
		expectedQty float64
	}{
		{name: "Whole shares", budget: 10000, price: 100, precision: 0, expectedQty: 100},
		{name: "Rounds down", budget: 9900, price: 101.25, precision: 0, expectedQty: 97},
		{name: "Fractional precision", budget: 1000, price: 300, precision: 2, expectedQty: 3.33},
		{name: "Budget less than price", budget: 50, price: 100, precision: 0, expectedQty: 0},
		{name: "Zero budget", budget: 0, price: 100, precision: 0, expectedQty: 0},
		{name: "Zero price", budget: 1000, price: 0, precision: 0, expectedQty: 0},
		{name: "Negative price", budget: 1000, price: -5, precision: 0, expectedQty: 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expectedQty, MaxQuantity(tc.budget, tc.price, tc.precision), 1e-9)
		})
	}
}

func (suite *UtilsTestSuite) TestRoundToDecimalPrecision() {
	tests := []struct {
		name      string
		quantity  float64
		precision int
		expected  float64
	}{
		{name: "Zero precision", quantity: 10.99, precision: 0, expected: 10},
		{name: "Two places", quantity: 1.23456, precision: 2, expected: 1.23},
		{name: "Already exact", quantity: 5, precision: 3, expected: 5},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, RoundToDecimalPrecision(tc.quantity, tc.precision), 1e-9)
		})
	}
}

func (suite *UtilsTestSuite) TestPositionSize() {
	suite.InDelta(10000.0, PositionSize(50000, 100000, 0.10), 1e-9)
	suite.InDelta(4000.0, PositionSize(4000, 100000, 0.10), 1e-9)
	suite.InDelta(0.0, PositionSize(-200, 100000, 0.10), 1e-9)
}

func (suite *UtilsTestSuite) TestRoundCents() {
	suite.InDelta(101.24, RoundCents(101.2449), 1e-9)
	suite.InDelta(101.25, RoundCents(101.245), 1e-9)
	suite.InDelta(7.0, RoundCents(7), 1e-9)
}
