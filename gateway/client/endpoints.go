package client

// Gateway API endpoints. Everything is POST with a JSON body.
const (
	// Auth
	EndpointLoginKey = "/api/Auth/loginKey"
	EndpointValidate = "/api/Auth/validate"

	// Accounts
	EndpointAccountSearch = "/api/Account/search"

	// Contracts
	EndpointContractSearch     = "/api/Contract/search"
	EndpointContractSearchByID = "/api/Contract/searchById"

	// Orders
	EndpointOrderPlace      = "/api/Order/place"
	EndpointOrderSearch     = "/api/Order/search"
	EndpointOrderSearchOpen = "/api/Order/searchOpen"
	EndpointOrderModify     = "/api/Order/modify"
	EndpointOrderCancel     = "/api/Order/cancel"

	// Positions
	EndpointPositionSearchOpen   = "/api/Position/searchOpen"
	EndpointPositionClose        = "/api/Position/closeContract"
	EndpointPositionPartialClose = "/api/Position/partialCloseContract"

	// Trades
	EndpointTradeSearch = "/api/Trade/search"

	// Market data
	EndpointRetrieveBars = "/api/History/retrieveBars"
)
