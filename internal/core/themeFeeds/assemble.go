package themeFeeds

// AssembleSummaries joins phase-one rows with phase-two relations. Row order is kept;
// posts missing from a relation map get an empty photo list and zero counts.
// viewerID marks the posts that user liked; 0 marks none.
func AssembleSummaries(rows []*PostRow, rel *Relations, viewerID int64) []*PostSummary {
	if rel == nil {
		rel = &Relations{}
	}

	summaries := make([]*PostSummary, 0, len(rows))
	for _, row := range rows {
		urls := rel.PhotoURLs[row.ID]
		if urls == nil {
			urls = []string{}
		}

		summaries = append(summaries, &PostSummary{
			ID:           row.ID,
			Title:        row.Title,
			Location:     row.Location,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			PhotoURLs:    urls,
			LikeCount:    len(rel.LikerIDs[row.ID]),
			CommentCount: rel.CommentCounts[row.ID],
			LikedByMe:    likedBy(rel.LikerIDs[row.ID], viewerID),
		})
	}
	return summaries
}

func likedBy(likers []int64, viewerID int64) bool {
	if viewerID <= 0 {
		return false
	}
	for _, id := range likers {
		if id == viewerID {
			return true
		}
	}
	return false
}

// postIDs returns the ids of rows in order
func postIDs(rows []*PostRow) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}
