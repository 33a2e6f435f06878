package dto

import "github.com/VechkanovVV/bugtrack/internal/storage"

// FromStorageUser storage.User -> UserDetail.
func FromStorageUser(u storage.User) UserDetail {
	return UserDetail{
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}
}

// FromStorageProject storage.Project -> ProjectResponse.
func FromStorageProject(p storage.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		CreatedAt:   &p.CreatedAt,
	}
}

// FromStorageBug storage.Bug -> BugResponse.
func FromStorageBug(b storage.Bug) BugResponse {
	return BugResponse{
		BugID:         b.ID,
		Title:         b.Title,
		Description:   b.Description,
		Status:        string(b.Status),
		ProjectID:     b.ProjectID,
		AssignedTo:    b.AssignedTo,
		CreatedBy:     b.CreatedBy,
		AttachmentKey: b.AttachmentKey,
		CreatedAt:     &b.CreatedAt,
		Version:       b.Version,
	}
}

// FromStorageBugList storage.Bug -> массив BugResponse.
func FromStorageBugList(bugs []storage.Bug) []BugResponse {
	res := make([]BugResponse, 0, len(bugs))
	for _, b := range bugs {
		res = append(res, FromStorageBug(b))
	}
	return res
}

// FromStorageStats storage.BugStats -> массив ProjectStats.
func FromStorageStats(stats []storage.BugStats) []ProjectStats {
	res := make([]ProjectStats, 0, len(stats))
	for _, st := range stats {
		res = append(res, ProjectStats{
			ProjectID:  st.ProjectID,
			Open:       st.Open,
			InProgress: st.InProgress,
			Closed:     st.Closed,
		})
	}
	return res
}
