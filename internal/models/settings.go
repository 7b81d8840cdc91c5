package models

// Settings is the shop identity printed on every document.
type Settings struct {
	ShopName            string `json:"shopName" validate:"required"`
	Tagline             string `json:"tagline"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	TaxID               string `json:"taxId"`
	InvoiceFooterNotice string `json:"invoiceFooterNotice"`
}
