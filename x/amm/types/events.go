package types

// Event types for the AMM module
const (
	EventTypeInstantiate     = "instantiate"
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeSwap            = "swap"
)

// Event attribute keys
const (
	AttributeKeyMethod         = "method"
	AttributeKeyAction         = "action"
	AttributeKeyOwner          = "owner"
	AttributeKeyTokenBContract = "usdt_contract"
	AttributeKeyShareContract  = "lpt_contract"
	AttributeKeySender         = "sender"
	AttributeKeyAmountA        = "amount_a"
	AttributeKeyAmountB        = "amount_b"
	AttributeKeyRefundA        = "refund_a"
	AttributeKeyShares         = "shares"
	AttributeKeyAssetIn        = "asset_in"
	AttributeKeyAssetOut       = "asset_out"
	AttributeKeyAmountIn       = "amount_in"
	AttributeKeyAmountOut      = "amount_out"
	AttributeKeyReserveA       = "reserve_a"
	AttributeKeyReserveB       = "reserve_b"
	AttributeKeyTotalShares    = "total_shares"
)
