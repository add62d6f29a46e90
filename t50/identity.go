package t50

// Identity strings this device family reports to the host printing
// system. Which one a given unit uses depends on its vendor skin; a
// Supvan-badged unit and a Katasymbol-badged unit speak the identical
// wire protocol but advertise themselves differently, so both are kept
// rather than unified into one.
const (
	IdentitySupvan     = "MFG:Supvan;MDL:T50 Pro;CMD:SUPVAN;"
	IdentityKatasymbol = "MFG:Katasymbol;MDL:M50 Pro;CMD:KATASYMBOL;"
)
