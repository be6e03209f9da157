package melee

import "fmt"

// Name returns the shared action-state name, or a hex placeholder for ids
// missing from the table. Character-specific ids resolve through
// ResolveStateName instead.
func (s ActionState) Name() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_STATE_0x%X", uint16(s))
}

// ResolveStateName names an action state in the context of one character:
// shared ids use the shared table, character-specific ids use that
// character's table.
func ResolveStateName(ch InGameCharacter, s ActionState) string {
	if s < CharacterStateBase {
		return s.Name()
	}
	if tbl, ok := characterStateNames[ch]; ok {
		if n, ok := tbl[s]; ok {
			return n
		}
	}
	return fmt.Sprintf("%s_STATE_0x%X", ch.Name(), uint16(s))
}

var stateNames = map[ActionState]string{
	0: "DEAD_DOWN", 1: "DEAD_LEFT", 2: "DEAD_RIGHT", 3: "DEAD_UP",
	4: "DEAD_UP_STAR", 5: "DEAD_UP_STAR_ICE", 6: "DEAD_UP_FALL",
	7: "DEAD_UP_FALL_HIT_CAMERA", 8: "DEAD_UP_FALL_HIT_CAMERA_FLAT",
	9: "DEAD_UP_FALL_ICE", 10: "DEAD_UP_FALL_HIT_CAMERA_ICE",
	11: "SLEEP", 12: "REBIRTH", 13: "REBIRTH_WAIT", 14: "WAIT",
	15: "WALK_SLOW", 16: "WALK_MIDDLE", 17: "WALK_FAST", 18: "TURN",
	19: "TURN_RUN", 20: "DASH", 21: "RUN", 22: "RUN_DIRECT", 23: "RUN_BRAKE",
	24: "KNEE_BEND", 25: "JUMP_F", 26: "JUMP_B", 27: "JUMP_AERIAL_F",
	28: "JUMP_AERIAL_B", 29: "FALL", 30: "FALL_F", 31: "FALL_B",
	32: "FALL_AERIAL", 33: "FALL_AERIAL_F", 34: "FALL_AERIAL_B",
	35: "FALL_SPECIAL", 36: "FALL_SPECIAL_F", 37: "FALL_SPECIAL_B",
	38: "DAMAGE_FALL", 39: "SQUAT", 40: "SQUAT_WAIT", 41: "SQUAT_RV",
	42: "LAND", 43: "LAND_FALL_SPECIAL",
	44: "ATTACK_11", 45: "ATTACK_12", 46: "ATTACK_13",
	47: "ATTACK_100_START", 48: "ATTACK_100_LOOP", 49: "ATTACK_100_END",
	50: "ATTACK_DASH", 51: "ATTACK_S_3_HI", 52: "ATTACK_S_3_HI_S",
	53: "ATTACK_S_3_S", 54: "ATTACK_S_3_LW_S", 55: "ATTACK_S_3_LW",
	56: "ATTACK_HI_3", 57: "ATTACK_LW_3", 58: "ATTACK_S_4_HI",
	59: "ATTACK_S_4_HI_S", 60: "ATTACK_S_4_S", 61: "ATTACK_S_4_LW_S",
	62: "ATTACK_S_4_LW", 63: "ATTACK_HI_4", 64: "ATTACK_LW_4",
	65: "ATTACK_AIR_N", 66: "ATTACK_AIR_F", 67: "ATTACK_AIR_B",
	68: "ATTACK_AIR_HI", 69: "ATTACK_AIR_LW",
	70: "LANDING_AIR_N", 71: "LANDING_AIR_F", 72: "LANDING_AIR_B",
	73: "LANDING_AIR_HI", 74: "LANDING_AIR_LW",
	75: "DAMAGE_HI_1", 76: "DAMAGE_HI_2", 77: "DAMAGE_HI_3",
	78: "DAMAGE_N_1", 79: "DAMAGE_N_2", 80: "DAMAGE_N_3",
	81: "DAMAGE_LW_1", 82: "DAMAGE_LW_2", 83: "DAMAGE_LW_3",
	84: "DAMAGE_AIR_1", 85: "DAMAGE_AIR_2", 86: "DAMAGE_AIR_3",
	87: "DAMAGE_FLY_HI", 88: "DAMAGE_FLY_N", 89: "DAMAGE_FLY_LW",
	90: "DAMAGE_FLY_TOP", 91: "DAMAGE_FLY_ROLL",
	92: "LIGHT_GET", 93: "HEAVY_GET",
	94: "LIGHT_THROW_F", 95: "LIGHT_THROW_B", 96: "LIGHT_THROW_HI",
	97: "LIGHT_THROW_LW", 98: "LIGHT_THROW_DASH", 99: "LIGHT_THROW_DROP",
	100: "LIGHT_THROW_AIR_F", 101: "LIGHT_THROW_AIR_B",
	102: "LIGHT_THROW_AIR_HI", 103: "LIGHT_THROW_AIR_LW",
	104: "HEAVY_THROW_F", 105: "HEAVY_THROW_B", 106: "HEAVY_THROW_HI",
	107: "HEAVY_THROW_LW",
	108: "LIGHT_THROW_F_4", 109: "LIGHT_THROW_B_4", 110: "LIGHT_THROW_HI_4",
	111: "LIGHT_THROW_LW_4",
	112: "LIGHT_THROW_AIR_F_4", 113: "LIGHT_THROW_AIR_B_4",
	114: "LIGHT_THROW_AIR_HI_4", 115: "LIGHT_THROW_AIR_LW_4",
	116: "HEAVY_THROW_F_4", 117: "HEAVY_THROW_B_4", 118: "HEAVY_THROW_HI_4",
	119: "HEAVY_THROW_LW_4",
	120: "SWORD_SWING_1", 121: "SWORD_SWING_3", 122: "SWORD_SWING_4",
	123: "SWORD_SWING_DASH",
	124: "BAT_SWING_1", 125: "BAT_SWING_3", 126: "BAT_SWING_4",
	127: "BAT_SWING_DASH",
	128: "PARASOL_SWING_1", 129: "PARASOL_SWING_3", 130: "PARASOL_SWING_4",
	131: "PARASOL_SWING_DASH",
	132: "HARISEN_SWING_1", 133: "HARISEN_SWING_3", 134: "HARISEN_SWING_4",
	135: "HARISEN_SWING_DASH",
	136: "STAR_ROD_SWING_1", 137: "STAR_ROD_SWING_3", 138: "STAR_ROD_SWING_4",
	139: "STAR_ROD_SWING_DASH",
	140: "LIP_STICK_SWING_1", 141: "LIP_STICK_SWING_3",
	142: "LIP_STICK_SWING_4", 143: "LIP_STICK_SWING_DASH",
	144: "ITEM_PARASOL_OPEN", 145: "ITEM_PARASOL_FALL",
	146: "ITEM_PARASOL_FALL_SPECIAL", 147: "ITEM_PARASOL_DAMAGE_FALL",
	148: "L_GUN_SHOOT", 149: "L_GUN_SHOOT_AIR", 150: "L_GUN_SHOOT_EMPTY",
	151: "L_GUN_SHOOT_AIR_EMPTY",
	152: "FIRE_FLOWER_SHOOT", 153: "FIRE_FLOWER_SHOOT_AIR",
	154: "ITEM_SCREW", 155: "ITEM_SCREW_AIR",
	156: "DAMAGE_SCREW", 157: "DAMAGE_SCREW_AIR",
	158: "ITEM_SCOPE_START", 159: "ITEM_SCOPE_RAPID",
	160: "ITEM_SCOPE_FIRE", 161: "ITEM_SCOPE_END",
	162: "ITEM_SCOPE_AIR_START", 163: "ITEM_SCOPE_AIR_RAPID",
	164: "ITEM_SCOPE_AIR_FIRE", 165: "ITEM_SCOPE_AIR_END",
	166: "ITEM_SCOPE_START_EMPTY", 167: "ITEM_SCOPE_RAPID_EMPTY",
	168: "ITEM_SCOPE_FIRE_EMPTY", 169: "ITEM_SCOPE_END_EMPTY",
	170: "ITEM_SCOPE_AIR_START_EMPTY", 171: "ITEM_SCOPE_AIR_RAPID_EMPTY",
	172: "ITEM_SCOPE_AIR_FIRE_EMPTY", 173: "ITEM_SCOPE_AIR_END_EMPTY",
	174: "LIFT_WAIT", 175: "LIFT_WALK_1", 176: "LIFT_WALK_2",
	177: "LIFT_TURN",
	178: "GUARD_ON", 179: "GUARD", 180: "GUARD_OFF", 181: "GUARD_SET_OFF",
	182: "GUARD_REFLECT",
	183: "DOWN_BOUND_U", 184: "DOWN_WAIT_U", 185: "DOWN_DAMAGE_U",
	186: "DOWN_STAND_U", 187: "DOWN_ATTACK_U", 188: "DOWN_FOWARD_U",
	189: "DOWN_BACK_U", 190: "DOWN_SPOT_U",
	191: "DOWN_BOUND_D", 192: "DOWN_WAIT_D", 193: "DOWN_DAMAGE_D",
	194: "DOWN_STAND_D", 195: "DOWN_ATTACK_D", 196: "DOWN_FOWARD_D",
	197: "DOWN_BACK_D", 198: "DOWN_SPOT_D",
	199: "PASSIVE", 200: "PASSIVE_STAND_F", 201: "PASSIVE_STAND_B",
	202: "PASSIVE_WALL", 203: "PASSIVE_WALL_JUMP", 204: "PASSIVE_CEIL",
	205: "SHIELD_BREAK_FLY", 206: "SHIELD_BREAK_FALL",
	207: "SHIELD_BREAK_DOWN_U", 208: "SHIELD_BREAK_DOWN_D",
	209: "SHIELD_BREAK_STAND_U", 210: "SHIELD_BREAK_STAND_D",
	211: "FURA_FURA",
	212: "CATCH", 213: "CATCH_PULL", 214: "CATCH_DASH",
	215: "CATCH_DASH_PULL", 216: "CATCH_WAIT", 217: "CATCH_ATTACK",
	218: "CATCH_CUT",
	219: "THROW_F", 220: "THROW_B", 221: "THROW_HI", 222: "THROW_LW",
	223: "CAPTURE_PULLED_HI", 224: "CAPTURE_WAIT_HI",
	225: "CAPTURE_DAMAGE_HI", 226: "CAPTURE_PULLED_LW",
	227: "CAPTURE_WAIT_LW", 228: "CAPTURE_DAMAGE_LW", 229: "CAPTURE_CUT",
	230: "CAPTURE_JUMP", 231: "CAPTURE_NECK", 232: "CAPTURE_FOOT",
	233: "ESCAPE_F", 234: "ESCAPE_B", 235: "ESCAPE", 236: "ESCAPE_AIR",
	237: "REBOUND_STOP", 238: "REBOUND",
	239: "THROWN_F", 240: "THROWN_B", 241: "THROWN_HI", 242: "THROWN_LW",
	243: "THROWN_LW_WOMEN",
	244: "PASS", 245: "OTTOTTO", 246: "OTTOTTO_WAIT",
	247: "FLY_REFLECT_WALL", 248: "FLY_REFLECT_CEIL",
	249: "STOP_WALL", 250: "STOP_CEIL", 251: "MISS_FOOT",
	252: "CLIFF_CATCH", 253: "CLIFF_WAIT",
	254: "CLIFF_CLIMB_SLOW", 255: "CLIFF_CLIMB_QUICK",
	256: "CLIFF_ATTACK_SLOW", 257: "CLIFF_ATTACK_QUICK",
	258: "CLIFF_ESCAPE_SLOW", 259: "CLIFF_ESCAPE_QUICK",
	260: "CLIFF_JUMP_SLOW_1", 261: "CLIFF_JUMP_SLOW_2",
	262: "CLIFF_JUMP_QUICK_1", 263: "CLIFF_JUMP_QUICK_2",
	264: "APPEAL_R", 265: "APPEAL_L",
	266: "SHOULDERED_WAIT", 267: "SHOULDERED_WALK_SLOW",
	268: "SHOULDERED_WALK_MIDDLE", 269: "SHOULDERED_WALK_FAST",
	270: "SHOULDERED_TURN",
	271: "THROWN_F_F", 272: "THROWN_F_B", 273: "THROWN_F_HI",
	274: "THROWN_F_LW",
	275: "CAPTURE_CAPTAIN", 276: "CAPTURE_YOSHI", 277: "YOSHI_EGG",
	278: "CAPTURE_KOOPA", 279: "CAPTURE_DAMAGE_KOOPA",
	280: "CAPTURE_WAIT_KOOPA", 281: "THROWN_KOOPA_F", 282: "THROWN_KOOPA_B",
	283: "CAPTURE_KOOPA_AIR", 284: "CAPTURE_DAMAGE_KOOPA_AIR",
	285: "CAPTURE_WAIT_KOOPA_AIR", 286: "THROWN_KOOPA_AIR_F",
	287: "THROWN_KOOPA_AIR_B",
	288: "CAPTURE_KIRBY", 289: "CAPTURE_WAIT_KIRBY",
	290: "THROWN_KIRBY_STAR", 291: "THROWN_COPY_STAR", 292: "THROWN_KIRBY",
	293: "BARREL_WAIT",
	294: "BURY", 295: "BURY_WAIT", 296: "BURY_JUMP",
	297: "DAMAGE_SONG", 298: "DAMAGE_SONG_WAIT", 299: "DAMAGE_SONG_RV",
	300: "DAMAGE_BIND", 301: "CAPTURE_MEWTWO",
	302: "CAPTURE_MEWTWO_AIR", 303: "THROWN_MEWTWO",
	304: "THROWN_MEWTWO_AIR",
	305: "WARP_STAR_JUMP", 306: "WARP_STAR_FALL",
	307: "HAMMER_WAIT", 308: "HAMMER_WALK", 309: "HAMMER_TURN",
	310: "HAMMER_KNEE_BEND", 311: "HAMMER_FALL", 312: "HAMMER_JUMP",
	313: "HAMMER_LANDING",
	314: "KINOKO_GIANT_START", 315: "KINOKO_GIANT_START_AIR",
	316: "KINOKO_GIANT_END", 317: "KINOKO_GIANT_END_AIR",
	318: "KINOKO_SMALL_START", 319: "KINOKO_SMALL_START_AIR",
	320: "KINOKO_SMALL_END", 321: "KINOKO_SMALL_END_AIR",
	322: "ENTRY", 323: "ENTRY_START", 324: "ENTRY_END",
	325: "DAMAGE_ICE", 326: "DAMAGE_ICE_JUMP",
	327: "CAPTURE_MASTER_HAND", 328: "CAPTURE_DAMAGE_MASTER_HAND",
	329: "CAPTURE_WAIT_MASTER_HAND", 330: "THROWN_MASTER_HAND",
	331: "CAPTURE_KIRBY_YOSHI", 332: "KIRBY_YOSHI_EGG",
	333: "CAPTURE_REDEAD", 334: "CAPTURE_LIKE_LIKE",
	335: "DOWN_REFLECT",
	336: "CAPTURE_CRAZY_HAND", 337: "CAPTURE_DAMAGE_CRAZY_HAND",
	338: "CAPTURE_WAIT_CRAZY_HAND", 339: "THROWN_CRAZY_HAND",
	340: "BARREL_CANNON_WAIT",
}

// Character-specific state names, keyed by in-game character. Fox and Falco
// share a layout; other characters fall back to a placeholder name.
var characterStateNames = map[InGameCharacter]map[ActionState]string{
	Fox:   spacieStateNames,
	Falco: spacieStateNames,
}

var spacieStateNames = map[ActionState]string{
	341: "BLASTER_GROUND_STARTUP", 342: "BLASTER_GROUND_LOOP",
	343: "BLASTER_GROUND_END",
	344: "BLASTER_AIR_STARTUP", 345: "BLASTER_AIR_LOOP",
	346: "BLASTER_AIR_END",
	347: "ILLUSION_GROUND_STARTUP", 348: "ILLUSION_GROUND",
	349: "ILLUSION_GROUND_END",
	350: "ILLUSION_AIR_STARTUP", 351: "ILLUSION_AIR",
	352: "ILLUSION_AIR_END",
	353: "FIREFOX_GROUND_STARTUP", 354: "FIREFOX_GROUND",
	355: "FIREFOX_GROUND_END",
	356: "FIREFOX_AIR_STARTUP", 357: "FIREFOX_AIR", 358: "FIREFOX_AIR_END",
	359: "REFLECTOR_STARTUP", 360: "REFLECTOR_LOOP",
	361: "REFLECTOR_TURN", 362: "REFLECTOR_END",
	363: "SMASH_TAUNT_RIGHT_STARTUP", 364: "SMASH_TAUNT_LEFT_STARTUP",
	365: "SMASH_TAUNT_RIGHT_RISE", 366: "SMASH_TAUNT_LEFT_RISE",
	367: "SMASH_TAUNT_WAIT", 368: "SMASH_TAUNT_FINISH",
}
