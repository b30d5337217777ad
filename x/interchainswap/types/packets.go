package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
)

// Packet types for the six Interchain Swap message kinds. Every packet is
// canonical JSON of a typed Go struct (never a map), so two replicas built
// from the same source produce byte-identical wire data for identical
// field values.
const (
	CreatePoolType    = "create_pool"
	SingleDepositType = "single_deposit"
	DoubleDepositType = "double_deposit"
	WithdrawType      = "withdraw"
	LeftSwapType      = "left_swap"
	RightSwapType     = "right_swap"
)

// IBCPacketData is the common interface every Interchain Swap packet
// payload satisfies.
type IBCPacketData interface {
	ValidateBasic() error
	GetType() string
	GetBytes() ([]byte, error)
}

// ---- CreatePool ----

type CreatePoolPacketData struct {
	Type          string   `json:"type"`
	SourcePort    string   `json:"source_port"`
	SourceChannel string   `json:"source_channel"`
	Sender        string   `json:"sender"`
	Denoms        [2]string `json:"denoms"`
	Decimals      [2]int64 `json:"decimals"`
	Weights       [2]int64 `json:"weights"`
}

func NewCreatePoolPacket(sourcePort, sourceChannel, sender string, denoms [2]string, decimals, weights [2]int64) CreatePoolPacketData {
	return CreatePoolPacketData{
		Type:          CreatePoolType,
		SourcePort:    sourcePort,
		SourceChannel: sourceChannel,
		Sender:        sender,
		Denoms:        denoms,
		Decimals:      decimals,
		Weights:       weights,
	}
}

func (p CreatePoolPacketData) ValidateBasic() error {
	if p.Type != CreatePoolType {
		return errorsmod.Wrapf(ErrInvalidPacket, "expected type %s, got %s", CreatePoolType, p.Type)
	}
	if p.Sender == "" {
		return errorsmod.Wrap(ErrValidation, "sender cannot be empty")
	}
	if p.Denoms[0] == "" || p.Denoms[1] == "" || p.Denoms[0] == p.Denoms[1] {
		return errorsmod.Wrap(ErrValidation, "pool requires two distinct non-empty denoms")
	}
	if p.Weights[0]+p.Weights[1] != 100 {
		return errorsmod.Wrapf(ErrValidation, "weights must sum to 100, got %d", p.Weights[0]+p.Weights[1])
	}
	if p.Weights[0] < 1 || p.Weights[0] > 99 || p.Weights[1] < 1 || p.Weights[1] > 99 {
		return errorsmod.Wrap(ErrValidation, "weights must each be in [1,99]")
	}
	for _, d := range p.Decimals {
		if d < 0 || d > 18 {
			return errorsmod.Wrap(ErrValidation, "decimals must be in [0,18]")
		}
	}
	return nil
}

func (p CreatePoolPacketData) GetType() string { return p.Type }

func (p CreatePoolPacketData) GetBytes() ([]byte, error) { return json.Marshal(p) }

type CreatePoolAck struct {
	PoolId string `json:"pool_id"`
}

// ---- SingleDeposit ----

type SingleDepositPacketData struct {
	Type   string `json:"type"`
	PoolId string `json:"pool_id"`
	Sender string `json:"sender"`
	Token  Coin   `json:"token"`
}

func NewSingleDepositPacket(poolId, sender string, token Coin) SingleDepositPacketData {
	return SingleDepositPacketData{Type: SingleDepositType, PoolId: poolId, Sender: sender, Token: token}
}

func (p SingleDepositPacketData) ValidateBasic() error {
	if p.Type != SingleDepositType {
		return errorsmod.Wrapf(ErrInvalidPacket, "expected type %s, got %s", SingleDepositType, p.Type)
	}
	if p.PoolId == "" {
		return errorsmod.Wrap(ErrValidation, "pool id cannot be empty")
	}
	if p.Sender == "" {
		return errorsmod.Wrap(ErrValidation, "sender cannot be empty")
	}
	if err := p.Token.Validate(); err != nil {
		return err
	}
	if !p.Token.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "deposit amount must be positive")
	}
	return nil
}

func (p SingleDepositPacketData) GetType() string { return p.Type }

func (p SingleDepositPacketData) GetBytes() ([]byte, error) { return json.Marshal(p) }

type SingleDepositAck struct {
	PoolToken Coin `json:"pool_token"`
}

// ---- DoubleDeposit ----

// DepositLeg is one signed half of a double-sided deposit.
type DepositLeg struct {
	Sender    string   `json:"sender"`
	Token     Coin     `json:"token"`
	Sequence  uint64   `json:"sequence,omitempty"`
	Signature []byte   `json:"signature,omitempty"`
}

type DoubleDepositPacketData struct {
	Type          string     `json:"type"`
	PoolId        string     `json:"pool_id"`
	LocalDeposit  DepositLeg `json:"local_deposit"`
	RemoteDeposit DepositLeg `json:"remote_deposit"`
}

func NewDoubleDepositPacket(poolId string, local, remote DepositLeg) DoubleDepositPacketData {
	return DoubleDepositPacketData{Type: DoubleDepositType, PoolId: poolId, LocalDeposit: local, RemoteDeposit: remote}
}

func (p DoubleDepositPacketData) ValidateBasic() error {
	if p.Type != DoubleDepositType {
		return errorsmod.Wrapf(ErrInvalidPacket, "expected type %s, got %s", DoubleDepositType, p.Type)
	}
	if p.PoolId == "" {
		return errorsmod.Wrap(ErrValidation, "pool id cannot be empty")
	}
	if p.LocalDeposit.Sender == "" || p.RemoteDeposit.Sender == "" {
		return errorsmod.Wrap(ErrValidation, "both deposit legs require a sender")
	}
	if err := p.LocalDeposit.Token.Validate(); err != nil {
		return err
	}
	if err := p.RemoteDeposit.Token.Validate(); err != nil {
		return err
	}
	if !p.LocalDeposit.Token.IsPositive() || !p.RemoteDeposit.Token.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "both deposit legs must be positive")
	}
	if len(p.RemoteDeposit.Signature) == 0 {
		return errorsmod.Wrap(ErrSignatureInvalid, "remote deposit leg requires a signature")
	}
	return nil
}

func (p DoubleDepositPacketData) GetType() string { return p.Type }

func (p DoubleDepositPacketData) GetBytes() ([]byte, error) { return json.Marshal(p) }

type DoubleDepositAck struct {
	PoolTokens [2]Coin `json:"pool_tokens"`
}

// ---- Withdraw ----

type WithdrawPacketData struct {
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	PoolCoin Coin   `json:"pool_coin"`
	DenomOut string `json:"denom_out"`
}

func NewWithdrawPacket(sender string, poolCoin Coin, denomOut string) WithdrawPacketData {
	return WithdrawPacketData{Type: WithdrawType, Sender: sender, PoolCoin: poolCoin, DenomOut: denomOut}
}

func (p WithdrawPacketData) ValidateBasic() error {
	if p.Type != WithdrawType {
		return errorsmod.Wrapf(ErrInvalidPacket, "expected type %s, got %s", WithdrawType, p.Type)
	}
	if p.Sender == "" {
		return errorsmod.Wrap(ErrValidation, "sender cannot be empty")
	}
	if err := p.PoolCoin.Validate(); err != nil {
		return err
	}
	if !p.PoolCoin.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "redeem amount must be positive")
	}
	if p.DenomOut == "" {
		return errorsmod.Wrap(ErrValidation, "denom_out cannot be empty")
	}
	return nil
}

func (p WithdrawPacketData) GetType() string { return p.Type }

func (p WithdrawPacketData) GetBytes() ([]byte, error) { return json.Marshal(p) }

type WithdrawAck struct {
	Tokens []Coin `json:"tokens"`
}

// ---- LeftSwap / RightSwap ----

// SwapPacketData is shared by LeftSwap (sell out-given-in) and RightSwap
// (buy in-given-out); only the Type discriminates which side of the
// formula applies.
type SwapPacketData struct {
	Type      string   `json:"type"`
	Sender    string   `json:"sender"`
	TokenIn   Coin     `json:"token_in"`
	TokenOut  Coin     `json:"token_out"`
	Slippage  int64    `json:"slippage"` // basis points of 1/10000
	Recipient string   `json:"recipient"`
}

func NewLeftSwapPacket(sender string, tokenIn, tokenOut Coin, slippage int64, recipient string) SwapPacketData {
	return SwapPacketData{Type: LeftSwapType, Sender: sender, TokenIn: tokenIn, TokenOut: tokenOut, Slippage: slippage, Recipient: recipient}
}

func NewRightSwapPacket(sender string, tokenIn, tokenOut Coin, slippage int64, recipient string) SwapPacketData {
	return SwapPacketData{Type: RightSwapType, Sender: sender, TokenIn: tokenIn, TokenOut: tokenOut, Slippage: slippage, Recipient: recipient}
}

func (p SwapPacketData) ValidateBasic() error {
	if p.Type != LeftSwapType && p.Type != RightSwapType {
		return errorsmod.Wrapf(ErrInvalidPacket, "unexpected swap packet type %s", p.Type)
	}
	if p.Sender == "" || p.Recipient == "" {
		return errorsmod.Wrap(ErrValidation, "sender and recipient are required")
	}
	if err := p.TokenIn.Validate(); err != nil {
		return err
	}
	if err := p.TokenOut.Validate(); err != nil {
		return err
	}
	if p.TokenIn.Denom == p.TokenOut.Denom {
		return errorsmod.Wrap(ErrValidation, "token_in and token_out must differ")
	}
	if p.Type == LeftSwapType && !p.TokenIn.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "left swap requires a positive token_in amount")
	}
	if p.Type == RightSwapType && !p.TokenOut.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "right swap requires a positive token_out amount")
	}
	if p.Slippage <= 0 || p.Slippage > 10000 {
		return errorsmod.Wrap(ErrValidation, "slippage must be a basis-point value in (0, 10000]")
	}
	return nil
}

func (p SwapPacketData) GetType() string { return p.Type }

func (p SwapPacketData) GetBytes() ([]byte, error) { return json.Marshal(p) }

type SwapAck struct {
	Tokens []Coin `json:"tokens"`
}

// ParsePacketData inspects the type discriminant and unmarshals into the
// matching concrete packet struct, mirroring a single dispatch(type, bytes)
// table rather than polymorphic decoding.
func ParsePacketData(data []byte) (IBCPacketData, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}

	switch base.Type {
	case CreatePoolType:
		var p CreatePoolPacketData
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errorsmod.Wrap(ErrInvalidPacket, err.Error())
		}
		return p, nil
	case SingleDepositType:
		var p SingleDepositPacketData
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errorsmod.Wrap(ErrInvalidPacket, err.Error())
		}
		return p, nil
	case DoubleDepositType:
		var p DoubleDepositPacketData
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errorsmod.Wrap(ErrInvalidPacket, err.Error())
		}
		return p, nil
	case WithdrawType:
		var p WithdrawPacketData
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errorsmod.Wrap(ErrInvalidPacket, err.Error())
		}
		return p, nil
	case LeftSwapType, RightSwapType:
		var p SwapPacketData
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errorsmod.Wrap(ErrInvalidPacket, err.Error())
		}
		return p, nil
	default:
		return nil, errorsmod.Wrapf(ErrInvalidPacket, "unknown packet type: %s", base.Type)
	}
}
