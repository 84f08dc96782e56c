package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrRateNotFound indicates no gold rate observation exists for the requested date.
	ErrRateNotFound = errors.New("gold rate not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrSnapshotNotFound indicates no valuation snapshot exists for the requested date.
	ErrSnapshotNotFound = errors.New("valuation snapshot not found")

	// ErrProviderNotConfigured indicates the remote rate provider has not been set up.
	ErrProviderNotConfigured = errors.New("rate provider not configured")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidInput indicates a trade request supplied neither a positive
	// amount nor a positive gram quantity.
	ErrInvalidInput = errors.New("either amount or grams must be a positive number")

	// ErrInvalidDate indicates a date string is not a real calendar date in
	// DD-MM-YYYY or YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRate indicates a rate value is empty, non-numeric, or not positive.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrInvalidKind indicates a trade kind other than buy or sell.
	ErrInvalidKind = errors.New("trade kind must be buy or sell")

	// ErrInsufficientBalance indicates a sell would exceed the gold currently held.
	ErrInsufficientBalance = errors.New("insufficient gold balance for selling")

	// ErrDateAlreadyTraded indicates a trade already exists for the given date.
	// A date with a recorded trade is settled and accepts no further trades.
	ErrDateAlreadyTraded = errors.New("a trade already exists for this date")
)

// Operation failure errors represent system-level failures when retrieving
// or persisting data.
var (
	// Rate operation errors
	ErrFailedToSaveRate      = errors.New("failed to save gold rate")
	ErrFailedToRetrieveRates = errors.New("failed to retrieve gold rates")
	ErrFailedToImportRates   = errors.New("failed to import gold rates")
	ErrFailedToExportRates   = errors.New("failed to export gold rates")
	ErrInvalidCSVHeaders     = errors.New("invalid CSV headers")

	// Portfolio operation errors
	ErrFailedToSubmitTrade       = errors.New("failed to submit trade")
	ErrFailedToRetrievePortfolio = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrieveHistory   = errors.New("failed to retrieve valuation history")

	// Provider operation errors
	ErrFailedToRetrieveProviderConfig = errors.New("failed to retrieve provider configuration")
	ErrFailedToUpdateProviderConfig   = errors.New("failed to update provider configuration")
	ErrFailedToFetchRate              = errors.New("failed to fetch rate from provider")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
