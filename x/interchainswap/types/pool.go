package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// PoolSide indicates whether a pool asset is issued on this replica's chain
// (Native) or on the counterparty's (Remote). The same pool carries opposite
// side labels on its two replicas.
type PoolSide int32

const (
	Native PoolSide = iota
	Remote
)

func (s PoolSide) String() string {
	if s == Remote {
		return "remote"
	}
	return "native"
}

// PoolStatus tracks a pool's position in its lifecycle. A pool never leaves
// Ready once it gets there.
type PoolStatus int32

const (
	PoolStatusInitial PoolStatus = iota
	PoolStatusReady
)

func (s PoolStatus) String() string {
	if s == PoolStatusReady {
		return "ready"
	}
	return "initial"
}

// Coin is the fungible token representation exchanged with the Bank
// contract: an opaque denom plus a non-negative arbitrary precision amount.
type Coin struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

func NewCoin(denom string, amount math.Int) Coin {
	return Coin{Denom: denom, Amount: amount}
}

func (c Coin) Validate() error {
	if c.Denom == "" {
		return errorsmod.Wrap(ErrInvalidTokenDenom, "denom cannot be empty")
	}
	if c.Amount.IsNil() || c.Amount.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidAmount, "%s: amount must be non-negative", c.Denom)
	}
	return nil
}

func (c Coin) IsPositive() bool {
	return !c.Amount.IsNil() && c.Amount.IsPositive()
}

// PoolAsset is one side of a two-asset weighted pool.
type PoolAsset struct {
	Side    PoolSide `json:"side"`
	Balance Coin     `json:"balance"`
	Weight  int64    `json:"weight"`  // percent in [1, 99]
	Decimal int64    `json:"decimal"` // [0, 18]
}

// NormalizedWeight returns Weight/100 as a LegacyDec, the wᵢ used by every
// AMM formula in the amm package.
func (a PoolAsset) NormalizedWeight() math.LegacyDec {
	return math.LegacyNewDec(a.Weight).QuoInt64(100)
}

func (a PoolAsset) Validate() error {
	if err := a.Balance.Validate(); err != nil {
		return err
	}
	if a.Weight < 1 || a.Weight > 99 {
		return errorsmod.Wrapf(ErrValidation, "weight %d out of range [1,99]", a.Weight)
	}
	if a.Decimal < 0 || a.Decimal > 18 {
		return errorsmod.Wrapf(ErrValidation, "decimal %d out of range [0,18]", a.Decimal)
	}
	return nil
}

// Pool is the persisted, cross-chain-replicated AMM pool. It is identical on
// both replicas except for the Side labels of its two assets (inverted
// between them) and PortId/ChannelId, which each replica fills with its own
// local channel-end identifiers — the ones it uses to derive its own escrow
// address for this pool (keeper.EscrowAddress).
type Pool struct {
	Id        string       `json:"id"`
	Assets    [2]PoolAsset `json:"assets"`
	Supply    Coin         `json:"supply"`
	Status    PoolStatus   `json:"status"`
	PortId    string       `json:"port_id"`
	ChannelId string       `json:"channel_id"`
}

// Validate enforces spec invariants 1, 2 and 4 (asset shape, weight sum,
// supply denom). Invariant 3 (exactly one Native asset) is checked by the
// keeper when a pool is created; invariant 5 (invariant-product
// monotonicity) has no runtime check: amm.InvariantV computes V for the
// property tests only.
func (p Pool) Validate() error {
	if p.Assets[0].Balance.Denom == "" || p.Assets[1].Balance.Denom == "" {
		return errorsmod.Wrap(ErrValidation, "pool must carry exactly two assets")
	}
	if p.Assets[0].Balance.Denom == p.Assets[1].Balance.Denom {
		return errorsmod.Wrap(ErrValidation, "pool assets must have distinct denoms")
	}
	if p.Assets[0].Weight+p.Assets[1].Weight != 100 {
		return errorsmod.Wrapf(ErrValidation, "weights must sum to 100, got %d", p.Assets[0].Weight+p.Assets[1].Weight)
	}
	for i := range p.Assets {
		if err := p.Assets[i].Validate(); err != nil {
			return err
		}
	}
	if p.Supply.Denom != p.Id {
		return errorsmod.Wrapf(ErrValidation, "supply denom %q must equal pool id %q", p.Supply.Denom, p.Id)
	}
	return nil
}

// AssetIndex returns the index (0 or 1) of the asset with the given denom.
func (p Pool) AssetIndex(denom string) (int, bool) {
	if p.Assets[0].Balance.Denom == denom {
		return 0, true
	}
	if p.Assets[1].Balance.Denom == denom {
		return 1, true
	}
	return 0, false
}

// OtherIndex returns the index opposite the one given.
func OtherIndex(i int) int {
	if i == 0 {
		return 1
	}
	return 0
}

func (p *Pool) MarshalForStore() ([]byte, error) {
	return json.Marshal(p)
}

func UnmarshalPoolFromStore(bz []byte) (Pool, error) {
	var p Pool
	if err := json.Unmarshal(bz, &p); err != nil {
		return Pool{}, err
	}
	return p, nil
}
