// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/sheet-memo-dashboard/internal/domain"
	"github.com/haierkeys/sheet-memo-dashboard/internal/model"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/sheetdata"
	"github.com/haierkeys/sheet-memo-dashboard/pkg/timex"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

// snapshotRepository 实现 domain.SnapshotRepository 接口
// シート群は行列形式で JSON 直列化して単一 BLOB に保存する
type snapshotRepository struct {
	dao *Dao
}

// NewSnapshotRepository 创建 SnapshotRepository 实例
func NewSnapshotRepository(dao *Dao) domain.SnapshotRepository {
	return &snapshotRepository{dao: dao}
}

// sheetBlob 快照 BLOB 内的单个工作表
// Rows[0] 为表头行；グリッドの行数・列数は取得時の元数据を保持する
type sheetBlob struct {
	Title       string     `json:"title"`
	SheetID     int64      `json:"sheetId,omitempty"`
	Index       int64      `json:"index"`
	RowCount    int64      `json:"rowCount,omitempty"`
	ColumnCount int64      `json:"columnCount,omitempty"`
	Rows        [][]string `json:"rows"`
}

func encodeSnapshot(snapshot *domain.Snapshot) ([]byte, error) {
	blobs := make([]*sheetBlob, 0, len(snapshot.Sheets))
	for i, sheet := range snapshot.Sheets {
		blob := &sheetBlob{Title: sheet.Title, Index: int64(i)}

		if meta, ok := snapshot.Meta(sheet.Title); ok {
			blob.SheetID = meta.SheetID
			blob.Index = meta.Index
			blob.RowCount = meta.RowCount
			blob.ColumnCount = meta.ColumnCount
		}

		if len(sheet.Records) > 0 {
			header := sheet.Records[0].Fields()
			blob.Rows = append(blob.Rows, header)
			for _, rec := range sheet.Records {
				row := make([]string, 0, len(header))
				for _, field := range header {
					row = append(row, rec.GetOrEmpty(field))
				}
				blob.Rows = append(blob.Rows, row)
			}
		}
		blobs = append(blobs, blob)
	}
	return sonic.Marshal(blobs)
}

func decodeSnapshot(payload []byte, snapshot *domain.Snapshot) error {
	var blobs []*sheetBlob
	if err := sonic.Unmarshal(payload, &blobs); err != nil {
		return err
	}

	for _, blob := range blobs {
		meta := &domain.SheetMeta{
			SheetID:     blob.SheetID,
			Title:       blob.Title,
			Index:       blob.Index,
			RowCount:    blob.RowCount,
			ColumnCount: blob.ColumnCount,
		}
		// 元数据を持たない旧形式の BLOB は行列から補う
		if meta.RowCount == 0 {
			meta.RowCount = int64(len(blob.Rows))
		}
		if meta.ColumnCount == 0 && len(blob.Rows) > 0 {
			meta.ColumnCount = int64(len(blob.Rows[0]))
		}
		snapshot.Metas = append(snapshot.Metas, meta)
		snapshot.Sheets = append(snapshot.Sheets, &domain.SheetPayload{
			Title:   blob.Title,
			Records: sheetdata.ConvertToRecords(sheetdata.StringRowsToAny(blob.Rows)),
		})
	}
	return nil
}

// Get 获取最新快照
func (r *snapshotRepository) Get(ctx context.Context) (*domain.Snapshot, error) {
	var m model.Snapshot
	if err := r.dao.db.WithContext(ctx).Order("id DESC").First(&m).Error; err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		ID:        m.ID,
		FetchedAt: time.Time(m.FetchedAt),
	}
	if err := decodeSnapshot(m.Payload, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save 保存快照并替换旧快照
func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, error) {
	payload, err := encodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now()
	}

	m := &model.Snapshot{
		Payload:   payload,
		FetchedAt: timex.Time(snapshot.FetchedAt),
	}

	err = r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Snapshot{}).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}

	snapshot.ID = m.ID
	return snapshot, nil
}
