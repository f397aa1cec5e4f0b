package game

import "encoding/json"

// ActionName identifies a top-level action submitted by the host.
type ActionName string

const (
	ActionRollDice       ActionName = "rollDice"
	ActionBuyProperty    ActionName = "buyProperty"
	ActionManageProperty ActionName = "manageProperty"
	ActionProposeTrade   ActionName = "proposeTrade"
	ActionRespondToTrade ActionName = "respondToTrade"
	ActionEndTurn        ActionName = "endTurn"
)

// Action is one named request with an optional JSON payload.
type Action struct {
	Name    ActionName      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewAction builds an Action, encoding payload as JSON. A nil payload is omitted.
func NewAction(name ActionName, payload interface{}) Action {
	a := Action{Name: name}
	if payload != nil {
		a.Payload, _ = json.Marshal(payload)
	}
	return a
}

// ManageOp is the development or financing operation of manageProperty.
type ManageOp string

const (
	ManageBuild      ManageOp = "build"
	ManageSell       ManageOp = "sell"
	ManageMortgage   ManageOp = "mortgage"
	ManageUnmortgage ManageOp = "unmortgage"
)

type ManagePayload struct {
	TileIndex int      `json:"tileIndex"`
	Action    ManageOp `json:"action"`
}

type RespondPayload struct {
	Accepted bool `json:"accepted"`
}
