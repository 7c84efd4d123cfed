package chain

import "github.com/gagliardetto/solana-go"

// Program IDs the monitor watches. Values match the live pump.fun
// launchpad and pump AMM deployments.
var (
	LaunchpadProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	AMMProgramID       = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
	WSOLMint           = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

const bondingCurveSeed = "bonding-curve"

// FindBondingCurve derives the launchpad's bonding-curve PDA for a mint.
// The Ingestion Loop uses this as an optional sanity cross-check against the
// bonding_curve field decoded from a Create event; a mismatch is logged,
// never fatal — the decoded field stays authoritative.
func FindBondingCurve(mint solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(bondingCurveSeed),
		mint.Bytes(),
	}
	pda, _, err := solana.FindProgramAddress(seeds, LaunchpadProgramID)
	return pda, err
}
