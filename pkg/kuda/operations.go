package kuda

import (
	"context"

	"github.com/finverge-hq/gokuda/pkg/endpoints"
)

// The high-level operations assemble the Kuda request envelope
// {"serviceType", "requestRef", "Data"} from typed parameters and execute
// it. Field names inside Data follow the remote API. Amounts are in kobo.

// CreateVirtualAccountParams identifies the customer a virtual account is
// opened for.
type CreateVirtualAccountParams struct {
	Email             string
	PhoneNumber       string
	LastName          string
	FirstName         string
	TrackingReference string // generated when empty
}

// VirtualFundsParams moves money into or out of one virtual account.
type VirtualFundsParams struct {
	TrackingReference string
	Amount            int64
	Narration         string
}

// ConfirmRecipientParams resolves a beneficiary account ahead of a transfer.
type ConfirmRecipientParams struct {
	BeneficiaryAccountNumber    string
	BeneficiaryBankCode         string
	SenderTrackingReference     string // empty for main-account enquiries
	IsRequestFromVirtualAccount bool
}

// TransferParams carries the fields shared by both transfer operations.
// TrackingReference names the sending virtual account and is ignored for
// main-account transfers, where the configured main account number is used.
type TransferParams struct {
	TrackingReference    string
	BeneficiaryAccount   string
	BeneficiaryBankCode  string
	BeneficiaryName      string
	Amount               int64
	Narration            string
	NameEnquirySessionID string
	SenderName           string
}

// VerifyBillCustomerParams checks a customer identifier against a biller.
type VerifyBillCustomerParams struct {
	KudaBillItemIdentifier string
	CustomerIdentification string
}

// PurchaseBillParams pays a bill from a virtual account.
type PurchaseBillParams struct {
	Amount             int64
	BillItemIdentifier string
	CustomerIdentifier string
	PhoneNumber        string
	TrackingReference  string
}

// BankList retrieves the roster of banks reachable for transfers.
func (c *Client) BankList(ctx context.Context) (Response, error) {
	return c.BankListRequest(ctx, Envelope(endpoints.ServiceTypeBankList, nil))
}

// CreateVirtualAccount opens a virtual account and reports its account
// number together with the tracking reference that identifies it from now
// on. An empty TrackingReference is generated on the caller's behalf.
func (c *Client) CreateVirtualAccount(ctx context.Context, p CreateVirtualAccountParams) (Response, error) {
	if p.TrackingReference == "" {
		p.TrackingReference = newReference()
	}
	data := map[string]any{
		"email":             p.Email,
		"phoneNumber":       p.PhoneNumber,
		"lastName":          p.LastName,
		"firstName":         p.FirstName,
		"trackingReference": p.TrackingReference,
	}
	return c.CreateVirtualAccountRequest(ctx, Envelope(endpoints.ServiceTypeCreateVirtualAccount, data))
}

// VirtualAccountBalance queries the balances of one virtual account.
func (c *Client) VirtualAccountBalance(ctx context.Context, trackingReference string) (Response, error) {
	data := map[string]any{"trackingReference": trackingReference}
	return c.VirtualAccountBalanceRequest(ctx, Envelope(endpoints.ServiceTypeVirtualAccountBalance, data))
}

// MainAccountBalance queries the balances of the configured main account.
func (c *Client) MainAccountBalance(ctx context.Context) (Response, error) {
	return c.MainAccountBalanceRequest(ctx, Envelope(endpoints.ServiceTypeMainAccountBalance, nil))
}

// FundVirtualAccount moves money from the main account into a virtual
// account.
func (c *Client) FundVirtualAccount(ctx context.Context, p VirtualFundsParams) (Response, error) {
	return c.FundVirtualAccountRequest(ctx, Envelope(endpoints.ServiceTypeFundVirtualAccount, virtualFundsData(p)))
}

// WithdrawFromVirtualAccount moves money from a virtual account back into
// the main account.
func (c *Client) WithdrawFromVirtualAccount(ctx context.Context, p VirtualFundsParams) (Response, error) {
	return c.WithdrawVirtualAccountRequest(ctx, Envelope(endpoints.ServiceTypeWithdrawVirtualAccount, virtualFundsData(p)))
}

// ConfirmTransferRecipient runs a name enquiry on the beneficiary account
// and echoes the sender tracking reference back for correlation.
func (c *Client) ConfirmTransferRecipient(ctx context.Context, p ConfirmRecipientParams) (Response, error) {
	data := map[string]any{
		"beneficiaryAccountNumber":    p.BeneficiaryAccountNumber,
		"beneficiaryBankCode":         p.BeneficiaryBankCode,
		"SenderTrackingReference":     p.SenderTrackingReference,
		"isRequestFromVirtualAccount": p.IsRequestFromVirtualAccount,
	}
	return c.ConfirmTransferRecipientRequest(ctx, Envelope(endpoints.ServiceTypeNameEnquiry, data))
}

// SendFundsFromMainAccount transfers from the configured main account to an
// external bank account.
func (c *Client) SendFundsFromMainAccount(ctx context.Context, p TransferParams) (Response, error) {
	data := map[string]any{
		"ClientAccountNumber":  c.creds.MainAccountNumber,
		"beneficiaryAccount":   p.BeneficiaryAccount,
		"beneficiaryBankCode":  p.BeneficiaryBankCode,
		"beneficiaryName":      p.BeneficiaryName,
		"amount":               p.Amount,
		"narration":            p.Narration,
		"nameEnquirySessionID": p.NameEnquirySessionID,
		"senderName":           p.SenderName,
	}
	return c.SendFundsFromMainAccountRequest(ctx, Envelope(endpoints.ServiceTypeSingleFundTransfer, data))
}

// SendFundsFromVirtualAccount transfers from a virtual account to an
// external bank account.
func (c *Client) SendFundsFromVirtualAccount(ctx context.Context, p TransferParams) (Response, error) {
	data := map[string]any{
		"trackingReference":    p.TrackingReference,
		"beneficiaryAccount":   p.BeneficiaryAccount,
		"beneficiaryBankCode":  p.BeneficiaryBankCode,
		"beneficiaryName":      p.BeneficiaryName,
		"amount":               p.Amount,
		"narration":            p.Narration,
		"nameEnquirySessionID": p.NameEnquirySessionID,
		"senderName":           p.SenderName,
	}
	return c.SendFundsFromVirtualAccountRequest(ctx, Envelope(endpoints.ServiceTypeVirtualFundTransfer, data))
}

// Billers lists the billers available under a bill type.
func (c *Client) Billers(ctx context.Context, billTypeName string) (Response, error) {
	data := map[string]any{"billTypeName": billTypeName}
	return c.BillersRequest(ctx, Envelope(endpoints.ServiceTypeBillers, data))
}

// VerifyBillCustomer confirms the customer identifier with the biller
// before a purchase.
func (c *Client) VerifyBillCustomer(ctx context.Context, p VerifyBillCustomerParams) (Response, error) {
	data := map[string]any{
		"kudaBillItemIdentifier": p.KudaBillItemIdentifier,
		"customerIdentification": p.CustomerIdentification,
	}
	return c.VerifyBillCustomerRequest(ctx, Envelope(endpoints.ServiceTypeVerifyBillCustomer, data))
}

// PurchaseBill pays a biller from a virtual account.
func (c *Client) PurchaseBill(ctx context.Context, p PurchaseBillParams) (Response, error) {
	data := map[string]any{
		"amount":             p.Amount,
		"billItemIdentifier": p.BillItemIdentifier,
		"customerIdentifier": p.CustomerIdentifier,
		"phoneNumber":        p.PhoneNumber,
		"trackingReference":  p.TrackingReference,
	}
	return c.PurchaseBillRequest(ctx, Envelope(endpoints.ServiceTypePurchaseBill, data))
}

func virtualFundsData(p VirtualFundsParams) map[string]any {
	return map[string]any{
		"trackingReference": p.TrackingReference,
		"amount":            p.Amount,
		"narration":         p.Narration,
	}
}
