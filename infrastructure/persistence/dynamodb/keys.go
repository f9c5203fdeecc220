// Package dynamodb implements the repository ports on a single DynamoDB
// table. Partition layout:
//
//	Meme           PK=MEME#<id>        SK=METADATA   GSI1PK=MEME     GSI1SK=CREATED#<ts>#<id>
//	Keyword        PK=KEYWORD#<id>     SK=METADATA   GSI1PK=KEYWORD  GSI1SK=NAME#<name>
//	Category       PK=CATEGORY#<name>  SK=METADATA   GSI1PK=CATEGORY GSI1SK=NAME#<name>
//	User           PK=USER#<deviceId>  SK=METADATA
//	Interaction    PK=USER#<deviceId>  SK=INTERACTION#<TYPE>#<nanos>#<memeId>
//	Save           PK=USER#<deviceId>  SK=INTERACTION#SAVE#MEME#<memeId>
//	RecommendWatch PK=USER#<deviceId>  SK=RECOWATCH#<weekStart yyyy-mm-dd>
//
// The deterministic SAVE sort key is what makes the save toggle a
// single-item update instead of a scan.
package dynamodb

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"memehub-backend/domain/core/entities"
)

const (
	skMetadata        = "METADATA"
	gsi1Meme          = "MEME"
	gsi1Keyword       = "KEYWORD"
	gsi1Category      = "CATEGORY"
	recommendWatchFmt = "RECOWATCH#%s"
	weekStartLayout   = "2006-01-02"
	createdSortLayout = time.RFC3339Nano
)

func memePK(id string) string { return fmt.Sprintf("MEME#%s", id) }

func memeGSI1SK(createdAt time.Time, id string) string {
	return fmt.Sprintf("CREATED#%s#%s", createdAt.UTC().Format(createdSortLayout), id)
}

func keywordPK(id string) string { return fmt.Sprintf("KEYWORD#%s", id) }

func keywordGSI1SK(name string) string { return fmt.Sprintf("NAME#%s", name) }

func categoryPK(name string) string { return fmt.Sprintf("CATEGORY#%s", name) }

func userPK(deviceID string) string { return fmt.Sprintf("USER#%s", deviceID) }

// saveSK is deterministic per (device partition, meme) so a second save
// lands on the same item
func saveSK(memeID string) string {
	return fmt.Sprintf("INTERACTION#SAVE#MEME#%s", memeID)
}

func interactionSK(itype entities.InteractionType, createdAt time.Time, memeID string) string {
	if itype == entities.InteractionSave {
		return saveSK(memeID)
	}
	return fmt.Sprintf("INTERACTION#%s#%d#%s", itype, createdAt.UnixNano(), memeID)
}

func interactionTypePrefix(itype entities.InteractionType) string {
	return fmt.Sprintf("INTERACTION#%s#", itype)
}

func recommendWatchSK(weekStart time.Time) string {
	return fmt.Sprintf(recommendWatchFmt, weekStart.UTC().Format(weekStartLayout))
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
