package model

type GenerateClaimCodesRequest struct {
	EventID string `json:"event_id"`
	Number  int    `json:"number"`
}

type GenerateClaimCodesResponse struct {
	Codes []string `json:"codes"`
}

type GetClaimCodesRequest struct {
	EventID string `json:"event_id"`
}

type GetClaimCodesResponse struct {
	ClaimCodes []ClaimCode `json:"claim_codes"`
}

type GetClaimCodeQRRequest struct {
	Code string `json:"code"`
	Size int    `json:"size"`
}

type GetClaimCodeQRResponse struct {
	Payload  string `json:"payload"`
	ImageURL string `json:"image_url"`
}

type ClaimRequest struct {
	Code string `json:"code"`
}

type ClaimResponse struct {
	Badge Badge `json:"badge"`
}

type ValidateClaimCodeRequest struct {
	Code string `json:"code"`
}

type ValidateClaimCodeResponse struct {
	Valid     bool   `json:"valid"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
}
