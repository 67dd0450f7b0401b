package kernel

import "github.com/google/uuid"

type AnalysisID string

func NewAnalysisID() AnalysisID        { return AnalysisID(uuid.New().String()) }
func (a AnalysisID) String() string    { return string(a) }
func (a AnalysisID) IsEmpty() bool     { return string(a) == "" }
func (a AnalysisID) IsValidUUID() bool { _, err := uuid.Parse(string(a)); return err == nil }
