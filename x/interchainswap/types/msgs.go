package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// The six message types a user submits to the Delegator. Each carries the
// channel it should travel over; the port is always PortID and is not a
// message field.

var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgSingleDeposit{}
	_ sdk.Msg = &MsgDoubleDeposit{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgLeftSwap{}
	_ sdk.Msg = &MsgRightSwap{}
)

type MsgCreatePool struct {
	Sender               string    `json:"sender"`
	SourceChannel        string    `json:"source_channel"`
	Denoms               [2]string `json:"denoms"`
	Decimals             [2]int64  `json:"decimals"`
	Weights              [2]int64  `json:"weights"`
	TimeoutHeight        uint64    `json:"timeout_height"`
	TimeoutTimestamp     uint64    `json:"timeout_timestamp"`
}

func (msg MsgCreatePool) Route() string { return RouterKey }
func (msg MsgCreatePool) Type() string  { return "create_pool" }

func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{addr}
}

func (msg MsgCreatePool) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(ErrValidation, "invalid sender address: %s", err)
	}
	if msg.SourceChannel == "" {
		return errorsmod.Wrap(ErrValidation, "source channel cannot be empty")
	}
	if msg.Denoms[0] == "" || msg.Denoms[1] == "" || msg.Denoms[0] == msg.Denoms[1] {
		return errorsmod.Wrap(ErrValidation, "create pool requires two distinct denoms")
	}
	if msg.Weights[0]+msg.Weights[1] != 100 {
		return errorsmod.Wrap(ErrValidation, "weights must sum to 100")
	}
	return nil
}

type MsgSingleDeposit struct {
	Sender        string `json:"sender"`
	SourceChannel string `json:"source_channel"`
	PoolId        string `json:"pool_id"`
	Token         Coin   `json:"token"`
	TimeoutHeight        uint64 `json:"timeout_height"`
	TimeoutTimestamp     uint64 `json:"timeout_timestamp"`
}

func (msg MsgSingleDeposit) Route() string { return RouterKey }
func (msg MsgSingleDeposit) Type() string  { return "single_deposit" }

func (msg MsgSingleDeposit) GetSigners() []sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{addr}
}

func (msg MsgSingleDeposit) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

func (msg MsgSingleDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(ErrValidation, "invalid sender address: %s", err)
	}
	if msg.PoolId == "" {
		return errorsmod.Wrap(ErrValidation, "pool id cannot be empty")
	}
	if err := msg.Token.Validate(); err != nil {
		return err
	}
	if !msg.Token.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "deposit amount must be positive")
	}
	return nil
}

type MsgDoubleDeposit struct {
	Sender           string `json:"sender"`
	SourceChannel    string `json:"source_channel"`
	PoolId           string `json:"pool_id"`
	LocalToken       Coin   `json:"local_token"`
	RemoteSender     string `json:"remote_sender"`
	RemoteToken      Coin   `json:"remote_token"`
	RemoteSequence   uint64 `json:"remote_sequence"`
	RemoteSignature  []byte `json:"remote_signature"`
	TimeoutHeight        uint64 `json:"timeout_height"`
	TimeoutTimestamp     uint64 `json:"timeout_timestamp"`
}

func (msg MsgDoubleDeposit) Route() string { return RouterKey }
func (msg MsgDoubleDeposit) Type() string  { return "double_deposit" }

func (msg MsgDoubleDeposit) GetSigners() []sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{addr}
}

func (msg MsgDoubleDeposit) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

func (msg MsgDoubleDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(ErrValidation, "invalid sender address: %s", err)
	}
	if msg.PoolId == "" {
		return errorsmod.Wrap(ErrValidation, "pool id cannot be empty")
	}
	if err := msg.LocalToken.Validate(); err != nil {
		return err
	}
	if err := msg.RemoteToken.Validate(); err != nil {
		return err
	}
	if !msg.LocalToken.IsPositive() || !msg.RemoteToken.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "both legs of a double deposit must be positive")
	}
	if msg.RemoteSender == "" {
		return errorsmod.Wrap(ErrValidation, "remote sender cannot be empty")
	}
	if len(msg.RemoteSignature) == 0 {
		return errorsmod.Wrap(ErrSignatureInvalid, "remote leg requires a signature over {remoteSender,sequence,token}")
	}
	return nil
}

type MsgWithdraw struct {
	Sender        string `json:"sender"`
	SourceChannel string `json:"source_channel"`
	PoolCoin      Coin   `json:"pool_coin"`
	DenomOut      string `json:"denom_out"`
	TimeoutHeight        uint64 `json:"timeout_height"`
	TimeoutTimestamp     uint64 `json:"timeout_timestamp"`
}

func (msg MsgWithdraw) Route() string { return RouterKey }
func (msg MsgWithdraw) Type() string  { return "withdraw" }

func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{addr}
}

func (msg MsgWithdraw) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(ErrValidation, "invalid sender address: %s", err)
	}
	if err := msg.PoolCoin.Validate(); err != nil {
		return err
	}
	if !msg.PoolCoin.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "redeem amount must be positive")
	}
	if msg.DenomOut == "" {
		return errorsmod.Wrap(ErrValidation, "denom_out cannot be empty")
	}
	return nil
}

type MsgLeftSwap struct {
	Sender        string `json:"sender"`
	SourceChannel string `json:"source_channel"`
	TokenIn       Coin   `json:"token_in"`
	TokenOut      Coin   `json:"token_out"`
	Slippage      int64  `json:"slippage"`
	Recipient     string `json:"recipient"`
	TimeoutHeight        uint64 `json:"timeout_height"`
	TimeoutTimestamp     uint64 `json:"timeout_timestamp"`
}

func (msg MsgLeftSwap) Route() string { return RouterKey }
func (msg MsgLeftSwap) Type() string  { return "left_swap" }

func (msg MsgLeftSwap) GetSigners() []sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{addr}
}

func (msg MsgLeftSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

func (msg MsgLeftSwap) ValidateBasic() error {
	return validateSwapMsg(msg.Sender, msg.Recipient, msg.TokenIn, msg.TokenOut, msg.Slippage, true)
}

type MsgRightSwap struct {
	Sender        string `json:"sender"`
	SourceChannel string `json:"source_channel"`
	TokenIn       Coin   `json:"token_in"`
	TokenOut      Coin   `json:"token_out"`
	Slippage      int64  `json:"slippage"`
	Recipient     string `json:"recipient"`
	TimeoutHeight        uint64 `json:"timeout_height"`
	TimeoutTimestamp     uint64 `json:"timeout_timestamp"`
}

func (msg MsgRightSwap) Route() string { return RouterKey }
func (msg MsgRightSwap) Type() string  { return "right_swap" }

func (msg MsgRightSwap) GetSigners() []sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{addr}
}

func (msg MsgRightSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

func (msg MsgRightSwap) ValidateBasic() error {
	return validateSwapMsg(msg.Sender, msg.Recipient, msg.TokenIn, msg.TokenOut, msg.Slippage, false)
}

func validateSwapMsg(sender, recipient string, tokenIn, tokenOut Coin, slippage int64, leftSwap bool) error {
	if _, err := sdk.AccAddressFromBech32(sender); err != nil {
		return errorsmod.Wrapf(ErrValidation, "invalid sender address: %s", err)
	}
	if recipient == "" {
		return errorsmod.Wrap(ErrValidation, "recipient cannot be empty")
	}
	if err := tokenIn.Validate(); err != nil {
		return err
	}
	if err := tokenOut.Validate(); err != nil {
		return err
	}
	if tokenIn.Denom == tokenOut.Denom {
		return errorsmod.Wrap(ErrValidation, "token_in and token_out must differ")
	}
	if leftSwap && !tokenIn.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "left swap requires a positive token_in amount")
	}
	if !leftSwap && !tokenOut.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "right swap requires a positive token_out amount")
	}
	if slippage <= 0 || slippage > 10000 {
		return errorsmod.Wrap(ErrValidation, "slippage must be a basis-point value in (0, 10000]")
	}
	return nil
}
