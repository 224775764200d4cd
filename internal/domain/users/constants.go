package users

// Role values are stored as-is; the upstream HR system defined them in
// Portuguese and the API keeps them for compatibility.
const (
	RoleCollaborator = "COLABORADOR"
	RoleLeader       = "LIDER"
	RoleCommittee    = "COMITE"
	RoleHR           = "RH"
)
