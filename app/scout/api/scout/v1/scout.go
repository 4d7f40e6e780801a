package v1

import "github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"

type ScanReq struct {
	Sector string `json:"sector,omitempty"`
}

type GetBoardReq struct{}

// BoardReply 当前展示的看板
type BoardReply struct {
	Points    []model.PainPoint `json:"points"`
	Sector    string            `json:"sector"`
	Source    string            `json:"source"`
	Scanning  bool              `json:"scanning"`
	Error     string            `json:"error,omitempty"`
	ScanId    string            `json:"scan_id,omitempty"`
	Favorites []string          `json:"favorites"`
}

type ListFavoritesReq struct{}

type ListFavoritesReply struct {
	Favorites []model.PainPoint `json:"favorites"`
}

type ToggleFavoriteReq struct {
	Point *model.PainPoint `json:"point"`
}

type ToggleFavoriteReply struct {
	Favorite  bool              `json:"favorite"`
	Favorites []model.PainPoint `json:"favorites"`
}

type ListSectorsReq struct{}

type ListSectorsReply struct {
	Sectors []string `json:"sectors"`
}

type AuthReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SignInReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
