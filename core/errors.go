package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrAssetNotFound no asset registered for the token
	ErrAssetNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrDepositNotEnabled asset can_deposit flag disabled
	ErrDepositNotEnabled ErrorCode = 100102
	// ErrWithdrawNotEnabled asset can_withdraw flag disabled
	ErrWithdrawNotEnabled ErrorCode = 100103
	// ErrNotCollateralizable asset can_use_as_collateral flag disabled
	ErrNotCollateralizable ErrorCode = 100104
	// ErrBorrowNotEnabled asset can_borrow flag disabled
	ErrBorrowNotEnabled ErrorCode = 100105

	// ErrSupplyLimitExceeded supplied balance would exceed the configured limit
	ErrSupplyLimitExceeded ErrorCode = 100200
	// ErrBorrowLimitExceeded borrowed balance would exceed the configured limit
	ErrBorrowLimitExceeded ErrorCode = 100201
	// ErrMinBorrowedAmount borrow below the configured minimum
	ErrMinBorrowedAmount ErrorCode = 100202
	// ErrTooManyAssets account touches more distinct assets than allowed
	ErrTooManyAssets ErrorCode = 100203

	// ErrAccountNotFound account not registered
	ErrAccountNotFound ErrorCode = 100300
	// ErrAccountLocked account locked by an in-flight multi-step operation
	ErrAccountLocked ErrorCode = 100301
	// ErrPositionNotFound no such position on the account
	ErrPositionNotFound ErrorCode = 100302
	// ErrInsufficientPoolBalance pool withdraw would underflow
	ErrInsufficientPoolBalance ErrorCode = 100303
	// ErrInsufficientShares account holds fewer shares than requested
	ErrInsufficientShares ErrorCode = 100304
	// ErrDebtNotFound position has no outstanding debt for the token
	ErrDebtNotFound ErrorCode = 100305

	// ErrRecencyTooLarge snapshot recency duration above the configured maximum
	ErrRecencyTooLarge ErrorCode = 100400
	// ErrPriceInFuture snapshot timestamp later than chain time
	ErrPriceInFuture ErrorCode = 100401
	// ErrPriceTooStale snapshot older than the staleness bound
	ErrPriceTooStale ErrorCode = 100402
	// ErrMissingPrice no price for a required token
	ErrMissingPrice ErrorCode = 100403

	// ErrSlippageViolation min amount out below the slippage bound
	ErrSlippageViolation ErrorCode = 100500
	// ErrInsufficientBalance balance cannot cover the requested amount
	ErrInsufficientBalance ErrorCode = 100501
	// ErrNotEnoughCollateral account would become under-collateralized
	ErrNotEnoughCollateral ErrorCode = 100502

	// ErrIllegalDebtPositionPair debt and position tokens share a margin party
	ErrIllegalDebtPositionPair ErrorCode = 100600
	// ErrMarginTokenMismatch margin token equals neither side of the pair
	ErrMarginTokenMismatch ErrorCode = 100601
	// ErrTokenNotRegistered token has no margin party tag
	ErrTokenNotRegistered ErrorCode = 100602
	// ErrDexNotRegistered dex account not whitelisted for margin trades
	ErrDexNotRegistered ErrorCode = 100603

	// ErrPromiseResultCountInvalid transfer callback carried more or less than one result
	ErrPromiseResultCountInvalid ErrorCode = 100700
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
