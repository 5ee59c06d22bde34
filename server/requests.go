package server

// ProvaCreateRequest represents a request to create a prova
type ProvaCreateRequest struct {
	Tipo              string   `json:"tipo" validate:"required,oneof=lider anjo bate_volta paredao palpite_paredao customizado"`
	TituloCustomizado *string  `json:"titulo_customizado,omitempty"`
	Descricao         *string  `json:"descricao,omitempty"`
	DataProva         string   `json:"data_prova" validate:"required"`
	MaxEscolhas       int      `json:"max_escolhas" validate:"omitempty,min=1,max=3"`
	IsApostaBinaria   bool     `json:"is_aposta_binaria"`
	Pergunta          *string  `json:"pergunta,omitempty"`
	PontosBase        *int     `json:"pontos_base,omitempty" validate:"omitempty,min=0"`
	OddsSim           *float64 `json:"odds_sim,omitempty" validate:"omitempty,min=0"`
	OddsNao           *float64 `json:"odds_nao,omitempty" validate:"omitempty,min=0"`
}

// ApostaRequest represents a participant pick on a prova
type ApostaRequest struct {
	ParticipanteID string `json:"participante_id" validate:"required,uuid4"`
}

// ApostaBinariaRequest represents a sim/nao answer on a prova
type ApostaBinariaRequest struct {
	Resposta string `json:"resposta" validate:"required,oneof=sim nao"`
}

// ResolverRequest declares a prova's outcome
type ResolverRequest struct {
	VencedorID         *string `json:"vencedor_id,omitempty" validate:"omitempty,uuid4"`
	Resposta           *string `json:"resposta,omitempty" validate:"omitempty,oneof=sim nao"`
	PontosParticipante int     `json:"pontos_participante" validate:"omitempty,min=0"`
}

// VotacaoRequest freezes or unfreezes voting on a prova
type VotacaoRequest struct {
	Aberta bool `json:"aberta"`
}

// EmparedadosRequest replaces the nominee set of a prova
type EmparedadosRequest struct {
	ParticipanteIDs []string `json:"participante_ids" validate:"required,min=1,max=4,dive,uuid4"`
}

// ParticipanteCreateRequest adds a contestant to the roster
type ParticipanteCreateRequest struct {
	Nome    string  `json:"nome" validate:"required,min=1,max=100"`
	FotoURL *string `json:"foto_url,omitempty" validate:"omitempty,url"`
}

// ParticipanteAtivoRequest eliminates or reinstates a contestant
type ParticipanteAtivoRequest struct {
	Ativo bool `json:"ativo"`
}

// RoleRequest moves a weekly role to a contestant
type RoleRequest struct {
	Role           string `json:"role" validate:"required,oneof=lider anjo imune"`
	ParticipanteID string `json:"participante_id" validate:"required,uuid4"`
}

// RegisterRequest creates a profile for a first-time user
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=40"`
}
