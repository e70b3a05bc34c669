package bills

// StatusCompleted is the only processing status the pipeline ever writes.
// Failed events write nothing at all.
const StatusCompleted = "completed"

// Record is one persisted bill, keyed by (userId, billId) in DynamoDB.
// Attribute names match the table the original Lambda wrote, so existing
// rows stay readable.
type Record struct {
	OwnerID          string          `json:"userId" dynamodbav:"userId"`
	BillID           string          `json:"billId" dynamodbav:"billId"`
	ObjectKey        string          `json:"s3Key" dynamodbav:"s3Key"`
	FileName         string          `json:"fileName" dynamodbav:"fileName"`
	UploadTimestamp  string          `json:"uploadDate" dynamodbav:"uploadDate"`
	UtilityCategory  string          `json:"utilityType" dynamodbav:"utilityType"`
	ExtractedData    ExtractedFields `json:"extractedData" dynamodbav:"extractedData"`
	RawText          string          `json:"rawText" dynamodbav:"rawText"`
	ProcessingStatus string          `json:"processingStatus" dynamodbav:"processingStatus"`
}
