package topics

import (
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// AssignAll 對資料集中每一列執行主題指派，結果寫回列上的
// Topic / TopicConfidence 欄位。模型不可用時不做任何事。
func AssignAll(m *Model, ds *models.Dataset) {
	if m == nil || !m.Available() || ds == nil {
		return
	}
	for i := range ds.Rows {
		row := &ds.Rows[i]
		assignment, ok := m.Assign(DocumentText(row))
		if !ok {
			row.Topic.Valid = false
			row.TopicConfidence = 0
			continue
		}
		row.Topic.Int64 = int64(assignment.Index)
		row.Topic.Valid = true
		row.TopicConfidence = assignment.Confidence
	}
}
