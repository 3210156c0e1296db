// Package menu holds the menu Item aggregate. Order placement reads items by
// name to price cart lines, so menu prices are the only prices an order trusts.
package menu
