package vocab

// Rarities in ascending order of scarcity.
var Rarities = table(
	"common", "Common",
	"uncommon", "Uncommon",
	"rare", "Rare",
	"unique", "Unique",
)

// ActorSizes from smallest to largest.
var ActorSizes = table(
	"tiny", "Tiny",
	"sm", "Small",
	"med", "Medium",
	"lg", "Large",
	"huge", "Huge",
	"grg", "Gargantuan",
)

var ActionTypes = table(
	"action", "Action",
	"reaction", "Reaction",
	"free", "Free Action",
	"passive", "Passive",
)

var ActionCategories = table(
	"interaction", "Interaction",
	"defensive", "Defensive",
	"offensive", "Offensive",
	"familiar", "Familiar",
)

var ActionTraits = table(
	"attack", "Attack",
	"auditory", "Auditory",
	"concentrate", "Concentrate",
	"downtime", "Downtime",
	"emotion", "Emotion",
	"exploration", "Exploration",
	"fear", "Fear",
	"flourish", "Flourish",
	"incapacitation", "Incapacitation",
	"linguistic", "Linguistic",
	"manipulate", "Manipulate",
	"mental", "Mental",
	"move", "Move",
	"open", "Open",
	"press", "Press",
	"rage", "Rage",
	"secret", "Secret",
	"stance", "Stance",
	"visual", "Visual",
)

var CreatureTraits = table(
	"aberration", "Aberration",
	"animal", "Animal",
	"beast", "Beast",
	"celestial", "Celestial",
	"construct", "Construct",
	"dragon", "Dragon",
	"dwarf", "Dwarf",
	"elemental", "Elemental",
	"elf", "Elf",
	"fey", "Fey",
	"fiend", "Fiend",
	"fungus", "Fungus",
	"giant", "Giant",
	"gnome", "Gnome",
	"goblin", "Goblin",
	"halfling", "Halfling",
	"human", "Human",
	"humanoid", "Humanoid",
	"leshy", "Leshy",
	"monitor", "Monitor",
	"ooze", "Ooze",
	"orc", "Orc",
	"plant", "Plant",
	"spirit", "Spirit",
	"undead", "Undead",
)

var HazardTraits = table(
	"auditory", "Auditory",
	"consumable", "Consumable",
	"environmental", "Environmental",
	"haunt", "Haunt",
	"magical", "Magical",
	"mechanical", "Mechanical",
	"trap", "Trap",
	"visual", "Visual",
)

var HazardComplexity = table(
	"simple", "Simple",
	"complex", "Complex",
)

var KingmakerCategories = table(
	"army-tactic", "Army Tactic",
	"army-war-action", "Army War Action",
	"kingdom-event", "Kingdom Event",
	"kingdom-feat", "Kingdom Feat",
	"kingdom-feature", "Kingdom Feature",
	"kingdom-activity", "Kingdom Activity",
)

var KingmakerTraits = table(
	"army", "Army",
	"commerce", "Commerce",
	"continuous", "Continuous",
	"downtime", "Downtime",
	"fortune", "Fortune",
	"incapacitation", "Incapacitation",
	"leadership", "Leadership",
	"region", "Region",
	"upkeep", "Upkeep",
)

var FeatCategories = table(
	"ancestry", "Ancestry",
	"ancestryfeature", "Ancestry Feature",
	"bonus", "Bonus Feat",
	"calling", "Calling",
	"class", "Class",
	"classfeature", "Class Feature",
	"curse", "Curse",
	"deityboon", "Deity Boon",
	"general", "General",
	"pfsboon", "PFS Boon",
	"skill", "Skill",
)

var FeatTraits = Merge(CreatureTraits, table(
	"archetype", "Archetype",
	"class", "Class",
	"dedication", "Dedication",
	"fortune", "Fortune",
	"general", "General",
	"lineage", "Lineage",
	"multiclass", "Multiclass",
	"skill", "Skill",
), ActionTraits)

// UniversalAncestry is the extra trait given to ancestry feats without a
// creature trait.
const UniversalAncestry = "ancestry:universal"

var Skills = table(
	"acrobatics", "Acrobatics",
	"arcana", "Arcana",
	"athletics", "Athletics",
	"crafting", "Crafting",
	"deception", "Deception",
	"diplomacy", "Diplomacy",
	"intimidation", "Intimidation",
	"medicine", "Medicine",
	"nature", "Nature",
	"occultism", "Occultism",
	"performance", "Performance",
	"religion", "Religion",
	"society", "Society",
	"stealth", "Stealth",
	"survival", "Survival",
	"thievery", "Thievery",
)

var ItemTypes = table(
	"weapon", "Weapon",
	"shield", "Shield",
	"armor", "Armor",
	"equipment", "Equipment",
	"consumable", "Consumable",
	"treasure", "Treasure",
	"backpack", "Container",
	"kit", "Kit",
)

// PhysicalItemTypes are item types browsed as equipment.
var PhysicalItemTypes = []string{"armor", "backpack", "book", "consumable", "equipment", "shield", "treasure", "weapon"}

var ArmorCategories = table(
	"unarmored", "Unarmored",
	"light", "Light",
	"medium", "Medium",
	"heavy", "Heavy",
	"light-barding", "Light Barding",
	"heavy-barding", "Heavy Barding",
)

var ArmorGroups = table(
	"chain", "Chain",
	"cloth", "Cloth",
	"composite", "Composite",
	"leather", "Leather",
	"plate", "Plate",
	"skeletal", "Skeletal",
	"wood", "Wood",
)

var WeaponCategories = table(
	"simple", "Simple",
	"martial", "Martial",
	"advanced", "Advanced",
	"unarmed", "Unarmed",
)

var WeaponGroups = table(
	"axe", "Axe",
	"bomb", "Bomb",
	"bow", "Bow",
	"brawling", "Brawling",
	"club", "Club",
	"crossbow", "Crossbow",
	"dart", "Dart",
	"firearm", "Firearm",
	"flail", "Flail",
	"hammer", "Hammer",
	"knife", "Knife",
	"pick", "Pick",
	"polearm", "Polearm",
	"shield", "Shield",
	"sling", "Sling",
	"spear", "Spear",
	"sword", "Sword",
)

var EquipmentTraits = Merge(
	table(
		"bulwark", "Bulwark",
		"comfort", "Comfort",
		"flexible", "Flexible",
		"noisy", "Noisy",
	),
	table(
		"alchemical", "Alchemical",
		"consumable", "Consumable",
		"drug", "Drug",
		"elixir", "Elixir",
		"potion", "Potion",
		"scroll", "Scroll",
		"talisman", "Talisman",
	),
	table(
		"apex", "Apex",
		"cursed", "Cursed",
		"invested", "Invested",
		"magical", "Magical",
		"structure", "Structure",
	),
	table(
		"deflecting", "Deflecting",
		"hefty", "Hefty",
		"launching", "Launching",
	),
	table(
		"agile", "Agile",
		"backstabber", "Backstabber",
		"deadly", "Deadly",
		"finesse", "Finesse",
		"forceful", "Forceful",
		"reach", "Reach",
		"sweep", "Sweep",
		"thrown", "Thrown",
		"two-hand", "Two-Hand",
		"versatile-p", "Versatile P",
		"versatile-s", "Versatile S",
	),
	MagicTraditions,
)

var MagicTraditions = table(
	"arcane", "Arcane",
	"divine", "Divine",
	"occult", "Occult",
	"primal", "Primal",
)

var SpellTraits = Merge(MagicTraditions, table(
	"acid", "Acid",
	"attack", "Attack",
	"cantrip", "Cantrip",
	"cold", "Cold",
	"concentrate", "Concentrate",
	"electricity", "Electricity",
	"emotion", "Emotion",
	"fear", "Fear",
	"fire", "Fire",
	"focus", "Focus",
	"healing", "Healing",
	"illusion", "Illusion",
	"incapacitation", "Incapacitation",
	"manipulate", "Manipulate",
	"mental", "Mental",
	"poison", "Poison",
	"sonic", "Sonic",
	"teleportation", "Teleportation",
	"vitality", "Vitality",
	"void", "Void",
))

var Saves = table(
	"fortitude", "Fortitude",
	"reflex", "Reflex",
	"will", "Will",
)

var SpecificCheckDCs = table(
	"armor", "AC",
	"fortitude", "Fortitude DC",
	"reflex", "Reflex DC",
	"will", "Will DC",
	"perception", "Perception DC",
)

var SpellCategories = table(
	"spell", "Spell",
	"cantrip", "Cantrip",
	"focus", "Focus",
	"ritual", "Ritual",
)
