package endpoints

import "net/http"

// Service type codes the Kuda open API dispatches on.
const (
	ServiceTypeBankList               = "BANK_LIST"
	ServiceTypeCreateVirtualAccount   = "ADMIN_CREATE_VIRTUAL_ACCOUNT"
	ServiceTypeVirtualAccountBalance  = "RETRIEVE_VIRTUAL_ACCOUNT_BALANCE"
	ServiceTypeMainAccountBalance     = "ADMIN_RETRIEVE_MAIN_ACCOUNT_BALANCE"
	ServiceTypeFundVirtualAccount     = "FUND_VIRTUAL_ACCOUNT"
	ServiceTypeWithdrawVirtualAccount = "WITHDRAW_VIRTUAL_ACCOUNT"
	ServiceTypeNameEnquiry            = "NAME_ENQUIRY"
	ServiceTypeSingleFundTransfer     = "SINGLE_FUND_TRANSFER"
	ServiceTypeVirtualFundTransfer    = "VIRTUAL_ACCOUNT_FUND_TRANSFER"
	ServiceTypeBillers                = "GET_BILLERS_BY_TYPE"
	ServiceTypeVerifyBillCustomer     = "VERIFY_BILL_CUSTOMER"
	ServiceTypePurchaseBill           = "ADMIN_PURCHASE_BILL"
)

var balanceFields = []Field{
	{Key: "ledger", Path: "data.ledgerBalance"},
	{Key: "available", Path: "data.availableBalance"},
	{Key: "withdrawable", Path: "data.withdrawableBalance"},
}

var transferFields = []Field{
	{Key: "transaction_reference", Path: "transactionReference"},
	{Key: "request_reference", Path: "requestReference", Optional: true},
}

// builtins is the stock endpoint table. Predicates differ between endpoints
// on purpose: the remote API is not uniform, and each spec mirrors what its
// endpoint actually guarantees.
var builtins = []Spec{
	{
		ServiceType:     ServiceTypeBankList,
		Name:            "bank_list",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"data.banks"},
		Fields:          []Field{{Key: "banks", Path: "data.banks"}},
	},
	{
		ServiceType:     ServiceTypeCreateVirtualAccount,
		Name:            "create_virtual_account",
		SuccessStatus:   http.StatusCreated,
		CheckStatusFlag: true,
		Require:         []string{"data.accountNumber"},
		Fields:          []Field{{Key: "account_number", Path: "data.accountNumber"}},
		Echo:            []Field{{Key: "tracking_reference", Path: "Data.trackingReference"}},
	},
	{
		ServiceType:     ServiceTypeVirtualAccountBalance,
		Name:            "virtual_account_balance",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Fields:          balanceFields,
	},
	{
		ServiceType:     ServiceTypeMainAccountBalance,
		Name:            "main_account_balance",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Fields:          balanceFields,
	},
	{
		ServiceType:     ServiceTypeFundVirtualAccount,
		Name:            "fund_virtual_account",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"transactionReference"},
		Fields:          []Field{{Key: "reference", Path: "transactionReference"}},
	},
	{
		ServiceType:     ServiceTypeWithdrawVirtualAccount,
		Name:            "withdraw_virtual_account",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"transactionReference"},
		Fields:          []Field{{Key: "reference", Path: "transactionReference"}},
	},
	{
		ServiceType:     ServiceTypeNameEnquiry,
		Name:            "confirm_transfer_recipient",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"data.beneficiaryAccountNumber", "data.beneficiaryName"},
		Fields: []Field{
			{Key: "beneficiary_account_number", Path: "data.beneficiaryAccountNumber"},
			{Key: "beneficiary_name", Path: "data.beneficiaryName"},
			{Key: "beneficiary_code", Path: "data.beneficiaryBankCode", Optional: true},
			{Key: "session_id", Path: "data.sessionID", Optional: true},
			{Key: "sender_account", Path: "data.senderAccountNumber", Optional: true},
			{Key: "transfer_charge", Path: "data.transferCharge", Optional: true},
			{Key: "name_enquiry_id", Path: "data.nameEnquiryID", Optional: true},
		},
		Echo: []Field{{Key: "tracking_reference", Path: "Data.SenderTrackingReference"}},
	},
	{
		ServiceType:     ServiceTypeSingleFundTransfer,
		Name:            "send_funds_from_main_account",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"transactionReference"},
		Fields:          transferFields,
	},
	{
		ServiceType:     ServiceTypeVirtualFundTransfer,
		Name:            "send_funds_from_virtual_account",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"transactionReference"},
		Fields:          transferFields,
	},
	{
		ServiceType:     ServiceTypeBillers,
		Name:            "billers",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"data.billers"},
		Fields:          []Field{{Key: "billers", Path: "data.billers"}},
	},
	{
		ServiceType:     ServiceTypeVerifyBillCustomer,
		Name:            "verify_bill_customer",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"data.customerName"},
		// The remote API answers with customerName and downstream callers
		// key off it verbatim, so this one keeps its camelCase key.
		Fields: []Field{{Key: "customerName", Path: "data.customerName"}},
	},
	{
		ServiceType:     ServiceTypePurchaseBill,
		Name:            "purchase_bill",
		SuccessStatus:   http.StatusOK,
		CheckStatusFlag: true,
		Require:         []string{"data.reference"},
		Fields:          []Field{{Key: "reference", Path: "data.reference"}},
	},
}
