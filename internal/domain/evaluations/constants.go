package evaluations

// Evaluation types keep the wire values used by the historical data set.
const (
	TypeSelf   = "AUTO"
	TypeLeader = "LIDER"
	TypePeer   = "PAR"
)
