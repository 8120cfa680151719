package calculator

import "math/big"

// Constants for the Chudnovsky algorithm.
var (
	// A is the constant 13591409 in the Chudnovsky formula.
	A = big.NewInt(13591409)

	// B is the constant 545140134 in the Chudnovsky formula.
	B = big.NewInt(545140134)

	// C is the constant 640320 in the Chudnovsky formula.
	C = big.NewInt(640320)

	// C3Over24 is 640320^3 / 24, precomputed so each leaf avoids an Exp
	// and a Div call.
	C3Over24 = big.NewInt(10939058860032000)
)
