package seed

// words is the mnemonic alphabet. Encoding only ever emits the first
// 2^wordBits entries; the tail is still accepted when decoding.
var words = [520]string{
	"acorn", "acre", "actor", "adobe", "aged", "agent",
	"air", "alarm", "album", "alert", "alley", "alpine",
	"amber", "angle", "ankle", "antler", "apple", "april",
	"apron", "arch", "arena", "argon", "arrow", "ash",
	"aspen", "atlas", "atom", "attic", "august", "autumn",
	"avid", "axis", "bacon", "badge", "bagel", "baker",
	"bamboo", "banjo", "barley", "barn", "basil", "basin",
	"batch", "bay", "beach", "beacon", "beam", "bean",
	"bear", "beaver", "bell", "belt", "bench", "berry",
	"bike", "birch", "bird", "bison", "black", "blade",
	"blaze", "blend", "bloom", "blue", "bluff", "board",
	"boat", "bolt", "bonus", "book", "boot", "border",
	"bottle", "boulder", "bow", "box", "brass", "brave",
	"bread", "breeze", "brick", "bridge", "bright", "brook",
	"broom", "brown", "brush", "bubble", "bucket", "budge",
	"buffalo", "bugle", "bulb", "bundle", "burrow", "butter",
	"cabin", "cable", "cactus", "cairn", "camel", "camera",
	"canal", "candle", "canoe", "canyon", "cape", "carbon",
	"cargo", "carol", "carrot", "castle", "cave", "cedar",
	"cellar", "chalk", "chapel", "charm", "chart", "cheese",
	"chef", "cherry", "chess", "chest", "chime", "chip",
	"choir", "cider", "cinder", "circle", "citrus", "civic",
	"clam", "clarinet", "classic", "clay", "cliff", "climb",
	"cloak", "clock", "cloud", "clover", "coach", "coal",
	"coast", "cobalt", "cocoa", "coin", "collar", "comet",
	"compass", "copper", "coral", "cork", "corn", "cotton",
	"cougar", "cove", "coyote", "crab", "craft", "crane",
	"crater", "cream", "creek", "crescent", "crest", "cricket",
	"crisp", "crocus", "crow", "crown", "crumb", "crystal",
	"cub", "curve", "cypress", "daisy", "dapple", "dart",
	"dawn", "debut", "decade", "deck", "deer", "delta",
	"denim", "depot", "desert", "dew", "diesel", "dime",
	"dingo", "dome", "donkey", "dough", "dove", "dragon",
	"drift", "drum", "dune", "dusk", "eager", "eagle",
	"earth", "easel", "east", "echo", "eclipse", "eel",
	"elbow", "elder", "elk", "elm", "ember", "emerald",
	"engine", "envoy", "era", "ermine", "estate", "evening",
	"ever", "exit", "fable", "falcon", "fall", "fancy",
	"farm", "fawn", "feast", "feather", "fellow", "felt",
	"fennel", "fern", "ferry", "fever", "field", "fig",
	"filly", "finch", "fir", "fire", "fish", "fjord",
	"flame", "flannel", "flare", "flask", "fleet", "flint",
	"float", "flock", "flora", "flour", "flute", "foam",
	"fog", "forest", "forge", "fort", "fossil", "fox",
	"frame", "freight", "fresh", "frost", "fruit", "fudge",
	"fuel", "gala", "galaxy", "gale", "garden", "garlic",
	"garnet", "gate", "gazebo", "gecko", "gem", "geode",
	"geyser", "ginger", "glacier", "glade", "glass", "glen",
	"globe", "glove", "gold", "goose", "gopher", "gorge",
	"gouda", "gourd", "grain", "granite", "grape", "grass",
	"gravel", "green", "griffin", "grotto", "grove", "guitar",
	"gulf", "gull", "gust", "hail", "hall", "hammock",
	"harbor", "hare", "harp", "harvest", "hatch", "haven",
	"hawk", "hay", "hazel", "heath", "hedge", "helm",
	"herald", "heron", "hickory", "hill", "hinge", "hive",
	"hollow", "honey", "hoof", "horizon", "horn", "horse",
	"hound", "hummock", "hush", "husk", "hutch", "ice",
	"igloo", "incense", "index", "indigo", "ingot", "ink",
	"inlet", "iris", "iron", "island", "ivory", "ivy",
	"jade", "jasper", "jasmine", "jay", "jet", "jewel",
	"jigsaw", "journey", "jubilee", "judge", "juniper", "jute",
	"kayak", "keel", "kelp", "kettle", "key", "kiln",
	"king", "kiosk", "kite", "kiwi", "knack", "knoll",
	"koala", "kudzu", "lagoon", "lake", "lamb", "lamp",
	"lance", "lantern", "lapel", "larch", "lark", "latch",
	"laurel", "lava", "lawn", "ledge", "legend", "lemon",
	"lentil", "level", "lever", "lichen", "lilac", "lily",
	"lime", "linen", "lion", "lizard", "llama", "lobby",
	"locket", "lodge", "loft", "log", "loom", "lotus",
	"lunar", "lute", "lynx", "lyric", "macaw", "machine",
	"magma", "magnet", "magpie", "mallard", "mango", "mantle",
	"maple", "marble", "march", "marigold", "marina", "marsh",
	"mast", "meadow", "medal", "melon", "mentor", "mercury",
	"mesa", "meteor", "mica", "midday", "mill", "mimosa",
	"mineral", "mink", "mint", "mirror", "mist", "moat",
	"mocha", "molar", "monarch", "moose", "morning", "moss",
	"moth", "motor", "mound", "mouse", "mulberry", "mural",
	"musk", "mustang", "myrtle", "napkin", "narwhal", "nebula",
	"nectar", "needle", "nest", "nettle", "newt", "nickel",
	"night", "nimbus", "noble", "north", "notch", "note",
	"nougat", "nova", "nugget", "nutmeg", "oak", "oasis",
	"oat", "ocean", "ocelot", "ochre", "offer", "olive",
	"omega", "onion", "onyx", "opal", "opera", "orbit",
	"orchard", "orchid", "ore", "oriole", "osprey", "otter",
	"outpost", "oval", "oven", "owl", "ox", "oyster",
	"paddle", "pagoda", "palm", "panda", "pansy", "panther",
	"papaya", "parade", "parcel", "parka",
}

var wordIndex = func() map[string]uint32 {
	m := make(map[string]uint32, len(words))
	for i, w := range words {
		m[w] = uint32(i)
	}
	return m
}()
