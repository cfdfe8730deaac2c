package web

// indexHTML is the embedded dashboard page. It mirrors the scene
// events onto a canvas: grid lines, walls, the trail, and the robot.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>go-go1 simulator</title>
<style>
  body { background: #111; color: #ddd; font-family: monospace; margin: 2em; }
  canvas { background: #1b1b1b; border: 1px solid #444; }
  #status { margin-bottom: 1em; }
</style>
</head>
<body>
<div id="status">connecting...</div>
<canvas id="scene" width="480" height="480"></canvas>
<script>
const canvas = document.getElementById('scene');
const ctx = canvas.getContext('2d');
const status = document.getElementById('status');

let cols = 8, rows = 8, cell = 60;
let robot = null;

function toPx(p) {
  // grid y grows upward, canvas y grows downward
  return { x: p.x * cell, y: (rows - 1 - p.y) * cell };
}

function drawGrid() {
  cell = Math.floor(Math.min(canvas.width / cols, canvas.height / rows));
  ctx.strokeStyle = '#333';
  for (let x = 0; x <= cols; x++) {
    ctx.beginPath();
    ctx.moveTo(x * cell, 0);
    ctx.lineTo(x * cell, rows * cell);
    ctx.stroke();
  }
  for (let y = 0; y <= rows; y++) {
    ctx.beginPath();
    ctx.moveTo(0, y * cell);
    ctx.lineTo(cols * cell, y * cell);
    ctx.stroke();
  }
}

function drawRobot(p) {
  if (robot) {
    const old = toPx(robot);
    ctx.clearRect(old.x + 1, old.y + 1, cell - 2, cell - 2);
  }
  robot = p;
  const px = toPx(p);
  ctx.fillStyle = '#4fc3f7';
  ctx.beginPath();
  ctx.arc(px.x + cell / 2, px.y + cell / 2, cell / 3, 0, 2 * Math.PI);
  ctx.fill();
}

function handle(ev) {
  switch (ev.type) {
  case 'clear':
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    robot = null;
    break;
  case 'grid':
    cols = ev.width; rows = ev.height;
    drawGrid();
    break;
  case 'walls':
    ctx.fillStyle = '#a1887f';
    (ev.walls || []).forEach(w => {
      const px = toPx(w);
      ctx.fillRect(px.x + 1, px.y + 1, cell - 2, cell - 2);
    });
    break;
  case 'robot':
    drawRobot(ev.robot);
    break;
  case 'trail':
    const f = toPx(ev.from), t = toPx(ev.to);
    ctx.strokeStyle = '#81c784';
    ctx.lineWidth = 3;
    ctx.beginPath();
    ctx.moveTo(f.x + cell / 2, f.y + cell / 2);
    ctx.lineTo(t.x + cell / 2, t.y + cell / 2);
    ctx.stroke();
    ctx.lineWidth = 1;
    break;
  }
}

function connect() {
  const ws = new WebSocket('ws://' + location.host + '/ws/scene');
  ws.onopen = () => { status.textContent = 'connected'; };
  ws.onmessage = (msg) => handle(JSON.parse(msg.data));
  ws.onclose = () => {
    status.textContent = 'disconnected, retrying...';
    setTimeout(connect, 1000);
  };
}
connect();
</script>
</body>
</html>
`
