package desktop

import (
	"casedesk/internal/bridge"
	"casedesk/internal/model"
	"casedesk/internal/store"
)

// AddUploads creates one PENDING file per upload in the current folder, cascading from
// (50,50). The new items become the selection.
func (d *Desktop) AddUploads(ups []bridge.Upload) ([]model.Item, error) {
	if len(ups) == 0 {
		return nil, nil
	}
	parent := d.CurrentPath()
	ids := d.db.NewItemIDs(len(ups))
	now := d.now()
	out := make([]model.Item, 0, len(ups))
	for i, u := range ups {
		dec := bridge.Decode(u)
		offset := float64(LayoutPadding + i*CascadeStep)
		it := model.Item{
			ID:             ids[i],
			ParentID:       parent,
			Name:           dec.Name,
			Type:           model.ItemTypeFile,
			Position:       d.viewport.Clamp(model.Position{X: offset, Y: offset}),
			CreatedAt:      now,
			Content:        dec.Content,
			MimeType:       dec.MimeType,
			Size:           dec.Size,
			AnalysisStatus: model.AnalysisPending,
		}
		if err := d.db.Create(it); err != nil {
			d.selectItems(out)
			d.log.WithError(err).WithField("created", len(out)).Warn("upload failed")
			return out, err
		}
		out = append(out, it)
	}
	d.selectItems(out)
	d.log.WithField("count", len(out)).WithField("folder", parent).Debug("uploaded files")
	return out, nil
}

func (d *Desktop) selectItems(items []model.Item) {
	sel := make([]string, 0, len(items))
	for _, it := range items {
		sel = append(sel, it.ID)
	}
	d.selection = sel
}

// BeginAnalysis moves a PENDING item to ANALYZING and returns the request to hand to the
// analyst.
func (d *Desktop) BeginAnalysis(id string) (bridge.AnalysisRequest, bool) {
	it, ok := d.db.FindItem(id)
	if !ok || it.AnalysisStatus != model.AnalysisPending {
		return bridge.AnalysisRequest{}, false
	}
	status := model.AnalysisAnalyzing
	if err := d.db.Update(id, store.Patch{AnalysisStatus: &status}); err != nil {
		return bridge.AnalysisRequest{}, false
	}
	it.AnalysisStatus = status
	req := bridge.NewAnalysisRequest(it, d.db.AnalysisContext(it.ParentID))
	d.log.WithField("item", id).WithField("request", req.RequestID).Debug("analysis started")
	return req, true
}

// BeginPendingAnalyses starts analysis for every PENDING item among ids.
func (d *Desktop) BeginPendingAnalyses(ids []string) []bridge.AnalysisRequest {
	out := []bridge.AnalysisRequest{}
	for _, id := range ids {
		if req, ok := d.BeginAnalysis(id); ok {
			out = append(out, req)
		}
	}
	return out
}

// ApplyAnalysis stores a terminal analysis result. It reports false, changing nothing,
// when the item is gone or already finished.
func (d *Desktop) ApplyAnalysis(res bridge.AnalysisResult) bool {
	it, ok := d.db.FindItem(res.ItemID)
	if !ok || it.AnalysisStatus.IsTerminal() {
		d.log.WithField("item", res.ItemID).Debug("analysis result dropped")
		return false
	}
	status := model.AnalysisCompleted
	if res.Failed {
		status = model.AnalysisFailed
	}
	summary := res.Summary
	if err := d.db.Update(res.ItemID, store.Patch{AnalysisStatus: &status, AISummary: &summary}); err != nil {
		return false
	}
	d.log.WithField("item", res.ItemID).WithField("status", string(status)).Debug("analysis applied")
	return true
}
