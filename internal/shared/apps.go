package shared

// BankApp pairs a bank's canonical display name with its Play Store app id.
type BankApp struct {
	Name  string
	AppID string
}

// BankApps is the fixed ingestion roster. Order matters: it fixes the
// first-seen bank order the aggregator's tie-break relies on.
var BankApps = []BankApp{
	{Name: "Commercial Bank of Ethiopia", AppID: "com.combanketh.mobilebanking"},
	{Name: "Bank of Abyssinia", AppID: "com.boa.boaMobileBanking"},
	{Name: "Dashen Bank", AppID: "com.dashen.dashensuperapp"},
}
