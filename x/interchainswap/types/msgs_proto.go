package types

import "fmt"

// The methods below satisfy the gogoproto proto.Message interface
// (Reset, String, ProtoMessage) so the Msg types can be registered with the
// codec and interface registry. These messages are never proto-marshaled on
// the wire in this module (see Coin/Pool's JSON store encoding), so the
// implementations are the minimal boilerplate the interface requires.

func (msg *MsgCreatePool) Reset()         { *msg = MsgCreatePool{} }
func (msg *MsgCreatePool) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgCreatePool) ProtoMessage()  {}

func (msg *MsgSingleDeposit) Reset()         { *msg = MsgSingleDeposit{} }
func (msg *MsgSingleDeposit) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgSingleDeposit) ProtoMessage()  {}

func (msg *MsgDoubleDeposit) Reset()         { *msg = MsgDoubleDeposit{} }
func (msg *MsgDoubleDeposit) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgDoubleDeposit) ProtoMessage()  {}

func (msg *MsgWithdraw) Reset()         { *msg = MsgWithdraw{} }
func (msg *MsgWithdraw) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgWithdraw) ProtoMessage()  {}

func (msg *MsgLeftSwap) Reset()         { *msg = MsgLeftSwap{} }
func (msg *MsgLeftSwap) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgLeftSwap) ProtoMessage()  {}

func (msg *MsgRightSwap) Reset()         { *msg = MsgRightSwap{} }
func (msg *MsgRightSwap) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgRightSwap) ProtoMessage()  {}

func (gs *GenesisState) Reset()         { *gs = GenesisState{} }
func (gs *GenesisState) String() string { return fmt.Sprintf("%+v", *gs) }
func (gs *GenesisState) ProtoMessage()  {}
