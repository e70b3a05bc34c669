package bills

// billResponse mirrors the shape the dashboard front end consumes.
type billResponse struct {
	BillID           string          `json:"billId"`
	FileName         string          `json:"fileName"`
	UploadDate       string          `json:"uploadDate"`
	UtilityType      string          `json:"utilityType"`
	ProcessingStatus string          `json:"processingStatus"`
	ExtractedData    ExtractedFields `json:"extractedData"`
	S3Key            string          `json:"s3Key"`
}

type listResponse struct {
	Bills         []billResponse `json:"bills"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

func toResponse(record Record) billResponse {
	return billResponse{
		BillID:           record.BillID,
		FileName:         record.FileName,
		UploadDate:       record.UploadTimestamp,
		UtilityType:      record.UtilityCategory,
		ProcessingStatus: record.ProcessingStatus,
		ExtractedData:    record.ExtractedData,
		S3Key:            record.ObjectKey,
	}
}

func toListResponse(page ListPage) listResponse {
	out := listResponse{
		Bills:         make([]billResponse, 0, len(page.Bills)),
		NextPageToken: page.NextPageToken,
	}
	for _, record := range page.Bills {
		out.Bills = append(out.Bills, toResponse(record))
	}
	return out
}
