package facade

// libraryIDCategories is the fixed four-entry table mapping a LibraryId UUID
// to the ExternalGame.category value that identifies that storefront.
var libraryIDCategories = map[string]int32{
	"CB91DFC9-B977-43BF-8E70-55F46E410FAB": categorySteam,
	"AEBE8B7C-6DC3-4A66-AF31-E7375C6B5E9E": categoryGOG,
	"00000002-DBD1-46C6-B5D0-B1BA559D10E4": categoryEpic,
	"00000001-EBB2-4EEC-ABCB-7C89937A42BB": categoryItch,
}

const (
	categorySteam int32 = 1
	categoryGOG   int32 = 5
	categoryEpic  int32 = 26
	categoryItch  int32 = 30
)
