package kuda

import (
	"context"

	"github.com/finverge-hq/gokuda/pkg/endpoints"
)

// The *Request methods execute one remote operation with a caller-built
// payload. They skip payload assembly entirely; use them when the stock
// builders do not cover the shape you need to send.

func (c *Client) BankListRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeBankList, payload)
}

func (c *Client) CreateVirtualAccountRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeCreateVirtualAccount, payload)
}

func (c *Client) VirtualAccountBalanceRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeVirtualAccountBalance, payload)
}

func (c *Client) MainAccountBalanceRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeMainAccountBalance, payload)
}

func (c *Client) FundVirtualAccountRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeFundVirtualAccount, payload)
}

func (c *Client) WithdrawVirtualAccountRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeWithdrawVirtualAccount, payload)
}

func (c *Client) ConfirmTransferRecipientRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeNameEnquiry, payload)
}

func (c *Client) SendFundsFromMainAccountRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeSingleFundTransfer, payload)
}

func (c *Client) SendFundsFromVirtualAccountRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeVirtualFundTransfer, payload)
}

func (c *Client) BillersRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeBillers, payload)
}

func (c *Client) VerifyBillCustomerRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypeVerifyBillCustomer, payload)
}

func (c *Client) PurchaseBillRequest(ctx context.Context, payload map[string]any) (Response, error) {
	return c.Do(ctx, endpoints.ServiceTypePurchaseBill, payload)
}
